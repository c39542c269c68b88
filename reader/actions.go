package reader

import (
	"github.com/quillcore/pdfcore/model"
	"github.com/quillcore/pdfcore/reader/file"
)

// processAction resolves an action dictionary and its Next chain. A
// nil or unsupported action resolves to the zero Action (nil
// ActionType), never to an error: pages with exotic actions must still
// render.
func (r resolver) processAction(ac model.Object) (out model.Action, err error) {
	action, _ := r.resolve(ac).(model.ObjDict)
	if action["S"] == nil {
		return out, nil
	}

	name, _ := r.resolveName(action["S"])
	switch name {
	case "URI":
		var sub model.ActionURI
		sub.URI, _ = file.IsString(r.resolve(action["URI"]))
		sub.IsMap, _ = r.resolveBool(action["IsMap"])
		out.ActionType = sub
	case "GoTo":
		dest, err := r.processDestination(action["D"])
		if err != nil {
			return out, err
		}
		out.ActionType = model.ActionGoTo{D: dest}
	case "GoToR", "Launch":
		var sub model.ActionRemoteGoTo
		if name == "GoToR" { // a Launch action has no destination
			sub.D, err = r.processDestination(action["D"])
			if err != nil {
				return out, err
			}
		}
		sub.NewWindow, _ = r.resolveBool(action["NewWindow"])
		sub.F, err = r.resolveFileSpec(action["F"])
		if err != nil {
			return out, err
		}
		out.ActionType = sub
	case "GoToE":
		var sub model.ActionEmbeddedGoTo
		sub.D, err = r.processDestination(action["D"])
		if err != nil {
			return out, err
		}
		sub.NewWindow, _ = r.resolveBool(action["NewWindow"])
		if action["F"] != nil {
			sub.F, err = r.resolveFileSpec(action["F"])
			if err != nil {
				return out, err
			}
		}
		sub.T, err = r.resolveEmbeddedTarget(action["T"])
		if err != nil {
			return out, err
		}
		out.ActionType = sub
	case "Hide":
		sub, err := r.resolveHideAction(action)
		if err != nil {
			return out, err
		}
		out.ActionType = sub
	case "Named":
		n, _ := r.resolveName(action["N"])
		out.ActionType = model.ActionNamed(n)
	case "JavaScript":
		out.ActionType = model.ActionJavaScript{JS: r.textOrStream(action["JS"])}
	default:
		r.warn("unsupported action %s", name)
		return out, nil
	}

	// the Next entry is either one action or an array of them
	if arr, isArray := r.resolveArray(action["Next"]); isArray {
		out.Next = make([]model.Action, len(arr))
		for i, n := range arr {
			out.Next[i], err = r.processAction(n)
			if err != nil {
				return out, err
			}
		}
	} else if next, err := r.processAction(action["Next"]); err != nil {
		return out, err
	} else if next.ActionType != nil {
		out.Next = []model.Action{next}
	}
	return out, nil
}

func (r resolver) resolveHideAction(action model.ObjDict) (model.ActionHide, error) {
	var sub model.ActionHide
	if hide, ok := r.resolveBool(action["H"]); ok { // false is not the default value
		sub.Show = !hide
	}
	if array, isArray := r.resolveArray(action["T"]); isArray { // many targets
		sub.T = make([]model.ActionHideTarget, len(array))
		for i, t := range array {
			target, err := r.resolveOneHideTarget(t)
			if err != nil {
				return sub, err
			}
			sub.T[i] = target
		}
		return sub, nil
	}
	// one target
	target, err := r.resolveOneHideTarget(action["T"])
	if err != nil {
		return sub, err
	}
	sub.T = []model.ActionHideTarget{target}
	return sub, nil
}

// resolveOneHideTarget reads either a fully qualified field name or an
// annotation reference.
func (r resolver) resolveOneHideTarget(o model.Object) (model.ActionHideTarget, error) {
	if st, is := file.IsString(r.resolve(o)); is {
		return model.HideTargetFormName(decodeTextString(st)), nil
	}
	return r.resolveAnnotation(o)
}

func (r resolver) resolveEmbeddedTarget(o model.Object) (*model.EmbeddedTarget, error) {
	o = r.resolve(o)
	if o == nil {
		return nil, nil
	}
	dict, ok := o.(model.ObjDict)
	if !ok {
		return nil, errType("Target dictionary", o)
	}
	out := new(model.EmbeddedTarget)
	out.R, _ = r.resolveName(dict["R"])
	out.N, _ = file.IsString(r.resolve(dict["N"]))
	if p, ok := file.IsString(r.resolve(dict["P"])); ok {
		out.P = model.EmbeddedTargetDestNamed(p)
	} else if p, ok := r.resolveInt(dict["P"]); ok {
		out.P = model.EmbeddedTargetDestPage(p)
	}
	if a, ok := file.IsString(r.resolve(dict["A"])); ok {
		out.A = model.EmbeddedTargetAnnotNamed(a)
	} else if a, ok := r.resolveInt(dict["A"]); ok {
		out.A = model.EmbeddedTargetAnnotIndex(a)
	}
	var err error
	out.T, err = r.resolveEmbeddedTarget(dict["T"])
	return out, err
}
