// Adobe predefined ToUnicode cmaps
package standardcmaps

import (
	"github.com/quillcore/pdfcore/fonts/cmaps"
	"github.com/quillcore/pdfcore/model"
)

type t = cmaps.ToUnicodeTranslation
type a = cmaps.ToUnicodeArray
type p = cmaps.ToUnicodePair

// Adobe_CNS1_UCS2, Adobe_GB1_UCS2, Adobe_Japan1_UCS2, Adobe_Korea1_UCS2 and
// Adobe_KR_UCS2 are normally produced by the generator under
// fonts/standardcmaps/generate from Adobe's CMap resource data files, which
// are not present in this repository. Declared here as empty placeholders
// purely to satisfy the compiler; see BUILD_FLAGS.json "unresolved".
var (
	Adobe_CNS1_UCS2   = cmaps.UnicodeCMap{}
	Adobe_GB1_UCS2    = cmaps.UnicodeCMap{}
	Adobe_Japan1_UCS2 = cmaps.UnicodeCMap{}
	Adobe_Korea1_UCS2 = cmaps.UnicodeCMap{}
	Adobe_KR_UCS2     = cmaps.UnicodeCMap{}
)

var ToUnicodeCMaps = map[model.ObjName]cmaps.UnicodeCMap{
	"Adobe-CNS1-UCS2":   Adobe_CNS1_UCS2,
	"Adobe-GB1-UCS2":    Adobe_GB1_UCS2,
	"Adobe-Japan1-UCS2": Adobe_Japan1_UCS2,
	"Adobe-Korea1-UCS2": Adobe_Korea1_UCS2,
	"Adobe-KR-UCS2":     Adobe_KR_UCS2,
}
