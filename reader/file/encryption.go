package file

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rc4"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/quillcore/pdfcore/model"
)

// IncorrectPasswordErr is returned by Read/ReadFile when the document is
// encrypted and neither the user nor the owner password supplied in the
// Configuration is able to open it.
type IncorrectPasswordErr struct{}

func (IncorrectPasswordErr) Error() string { return "incorrect password" }

// encrypt holds everything needed to decrypt strings and streams once the
// document password has been validated.
type encrypt struct {
	enc model.Encrypt // as found in the PDF file

	// ID is the first element of the file trailer /ID array, needed to
	// derive the per-document key for revisions <= 4.
	ID [2]string

	key []byte // per-document encryption key
	aes bool   // true if AESV2/AESV3 is used instead of RC4

	// raw fields only needed during rev 5/6 (AES-256) authentication;
	// OE/UE are 32 bytes, stored here in a 48-byte buffer for uniformity
	o, u   [48]byte
	oe, ue [48]byte
}

// setupEncryption reads the trailer and the /Encrypt dict, authenticates
// against Configuration.Password (trying it as the user password, then as
// the owner password), and installs ctx.enc on success.
func (ctx *context) setupEncryption() error {
	if ctx.trailer.encrypt == nil { // not encrypted
		return nil
	}

	var info encrypt
	if len(ctx.trailer.id) > 0 {
		if s, ok := IsString(ctx.res(ctx.trailer.id[0])); ok {
			info.ID[0] = s
		}
	}

	var err error
	info.enc, info.o, info.u, info.oe, info.ue, err = ctx.processEncryptDict()
	if err != nil {
		return err
	}

	if info.enc.StmF != "" && info.enc.StmF != "Identity" {
		d, ok := info.enc.CF[info.enc.StmF]
		if !ok {
			return fmt.Errorf("missing entry for StmF %s in CF encrypt dict", info.enc.StmF)
		}
		info.aes, err = supportedCFEntry(d)
		if err != nil {
			return err
		}
	} else if info.enc.V >= model.KeySecurityHandler {
		// a V4/V5 document without an explicit StmF still needs to know the algorithm
		info.aes = true
	}

	std, ok := info.enc.EncryptionHandler.(model.EncryptionStandard)
	if !ok {
		// public key security handlers are not supported: leave the document
		// readable only through already-decrypted content, if any.
		ctx.enc = &info
		return nil
	}

	key, err := info.authenticate(std, ctx.Password)
	if err != nil {
		return err
	}
	info.key = key
	ctx.enc = &info
	return nil
}

// standardPadding is the 32-byte padding string used to pad/truncate
// passwords, as defined by the standard security handler (algorithm 3.2).
var standardPadding = [32]byte{
	0x28, 0xBF, 0x4E, 0x5E, 0x4E, 0x75, 0x8A, 0x41,
	0x64, 0x00, 0x4E, 0x56, 0xFF, 0xFA, 0x01, 0x08,
	0x2E, 0x2E, 0x00, 0xB6, 0xD0, 0x68, 0x3E, 0x80,
	0x2F, 0x0C, 0xA9, 0xFE, 0x64, 0x53, 0x69, 0x7A,
}

// permissionsBytes writes p as 4 bytes, low-order byte first.
func permissionsBytes(p model.UserPermissions) []byte {
	v := uint32(p)
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

func validationSalt(bb [48]byte) []byte { return bb[32:40] }
func keySalt(bb [48]byte) []byte        { return bb[40:48] }

// authenticate tries `password` first as the user password, then as the
// owner password, for every supported revision, and returns the resulting
// per-document encryption key.
func (info encrypt) authenticate(std model.EncryptionStandard, password string) ([]byte, error) {
	if std.R >= 5 {
		if key, ok := info.authenticateAES256User(password); ok {
			return key, nil
		}
		if key, ok := info.authenticateAES256Owner(password); ok {
			return key, nil
		}
		return nil, IncorrectPasswordErr{}
	}

	if key, ok := info.authenticateRC4User(std, password); ok {
		return key, nil
	}
	if key, ok := info.authenticateRC4Owner(std, password); ok {
		return key, nil
	}
	return nil, IncorrectPasswordErr{}
}

// -------------------- revision <= 4 (RC4 / AESV2), algorithm 3.6/3.7 --------------------

func padPassword(pw string) [32]byte {
	var out [32]byte
	copy(out[:], append([]byte(pw), standardPadding[:]...)[:32])
	return out
}

// computeKeyRC4 implements PDF algorithm 3.2: compute the encryption key
// from a padded password.
func (info encrypt) computeKeyRC4(std model.EncryptionStandard, paddedPassword [32]byte) []byte {
	keyLength := 5
	if std.R >= 3 {
		keyLength = int(info.enc.Length)
		if keyLength == 0 {
			keyLength = 5
		}
	}

	buf := append([]byte(nil), paddedPassword[:]...)
	buf = append(buf, std.O[:]...)
	buf = append(buf, permissionsBytes(info.enc.P)...)
	buf = append(buf, info.ID[0]...)
	if std.R >= 4 && std.DontEncryptMetadata {
		buf = append(buf, 0xff, 0xff, 0xff, 0xff)
	}
	sum := md5.Sum(buf)

	if std.R >= 3 {
		for range [50]int{} {
			sum = md5.Sum(sum[0:keyLength])
		}
	}
	return append([]byte(nil), sum[:keyLength]...)
}

func (info encrypt) authenticateRC4User(std model.EncryptionStandard, password string) ([]byte, bool) {
	return info.authenticateRC4UserPadded(std, padPassword(password))
}

func (info encrypt) authenticateRC4UserPadded(std model.EncryptionStandard, padded [32]byte) ([]byte, bool) {
	key := info.computeKeyRC4(std, padded)

	u := computeUserHash(std.R, key, info.ID[0])
	if std.R == 2 {
		if !bytes.Equal(u, std.U[:]) {
			return nil, false
		}
	} else {
		if !bytes.Equal(u[:16], std.U[:16]) {
			return nil, false
		}
	}
	return key, true
}

func (info encrypt) authenticateRC4Owner(std model.EncryptionStandard, password string) ([]byte, bool) {
	padded := padPassword(password)

	ownerKeyLength := 5
	if std.R >= 3 {
		ownerKeyLength = int(info.enc.Length)
		if ownerKeyLength == 0 {
			ownerKeyLength = 5
		}
	}
	sum := md5.Sum(padded[:])
	if std.R >= 3 {
		for range [50]int{} {
			sum = md5.Sum(sum[0:ownerKeyLength])
		}
	}
	rc4Key := sum[:ownerKeyLength]

	userPadded := make([]byte, 32)
	copy(userPadded, std.O[:])

	if std.R == 2 {
		c, err := rc4.NewCipher(rc4Key)
		if err != nil {
			return nil, false
		}
		c.XORKeyStream(userPadded, userPadded)
	} else {
		for i := 19; i >= 0; i-- {
			iterKey := make([]byte, len(rc4Key))
			for j, b := range rc4Key {
				iterKey[j] = b ^ byte(i)
			}
			c, err := rc4.NewCipher(iterKey)
			if err != nil {
				return nil, false
			}
			c.XORKeyStream(userPadded, userPadded)
		}
	}

	var recoveredUserPassword [32]byte
	copy(recoveredUserPassword[:], userPadded)
	return info.authenticateRC4UserPadded(std, recoveredUserPassword)
}

func computeUserHash(revision uint8, key []byte, id0 string) []byte {
	if revision == 2 {
		out := make([]byte, 32)
		c, err := rc4.NewCipher(key)
		if err != nil {
			return out
		}
		c.XORKeyStream(out, standardPadding[:])
		return out
	}

	buf := append([]byte(nil), standardPadding[:]...)
	buf = append(buf, id0...)
	hash := md5.Sum(buf)

	c, err := rc4.NewCipher(key)
	if err != nil {
		return hash[:]
	}
	c.XORKeyStream(hash[:], hash[:])

	for i := 1; i <= 19; i++ {
		iterKey := make([]byte, len(key))
		for j, b := range key {
			iterKey[j] = b ^ byte(i)
		}
		c, err := rc4.NewCipher(iterKey)
		if err != nil {
			return hash[:]
		}
		c.XORKeyStream(hash[:], hash[:])
	}
	return hash[:]
}

// -------------------- revision 5/6 (AES-256), algorithm 2.A/2.B --------------------

func (info encrypt) authenticateAES256User(password string) ([]byte, bool) {
	pw := []byte(password)
	if len(pw) > 127 {
		pw = pw[:127]
	}

	s := sha256.Sum256(append(append([]byte(nil), pw...), validationSalt(info.u)...))
	if !bytes.Equal(s[:], info.u[:32]) {
		return nil, false
	}

	keyHash := sha256.Sum256(append(append([]byte(nil), pw...), keySalt(info.u)...))
	cb, err := aes.NewCipher(keyHash[:])
	if err != nil {
		return nil, false
	}
	iv := make([]byte, 16)
	key := make([]byte, 32)
	cipher.NewCBCDecrypter(cb, iv).CryptBlocks(key, info.ue[:32])
	return key, true
}

func (info encrypt) authenticateAES256Owner(password string) ([]byte, bool) {
	pw := []byte(password)
	if len(pw) > 127 {
		pw = pw[:127]
	}

	b := append(append([]byte(nil), pw...), validationSalt(info.o)...)
	b = append(b, info.u[:]...)
	s := sha256.Sum256(b)
	if !bytes.Equal(s[:], info.o[:32]) {
		return nil, false
	}

	b = append(append([]byte(nil), pw...), keySalt(info.o)...)
	b = append(b, info.u[:]...)
	keyHash := sha256.Sum256(b)

	cb, err := aes.NewCipher(keyHash[:])
	if err != nil {
		return nil, false
	}
	iv := make([]byte, 16)
	key := make([]byte, 32)
	cipher.NewCBCDecrypter(cb, iv).CryptBlocks(key, info.oe[:32])
	return key, true
}

// -------------------- per-object key derivation and decryption --------------------

// supportedCFEntry returns true if AES should be used, or an error if the
// fields are invalid.
func supportedCFEntry(d model.CrypFilter) (bool, error) {
	cfm := d.CFM
	if cfm != "" && cfm != "V2" && cfm != "AESV2" && cfm != "AESV3" {
		return false, fmt.Errorf("invalid CFM entry %s", cfm)
	}
	if l := d.Length; l != 0 && (l < 5 || l > 16) && l != 32 {
		return false, fmt.Errorf("invalid Length entry %d", l)
	}
	return cfm == "AESV2" || cfm == "AESV3", nil
}

// decryptKey derives the per-object key (algorithm 3.1). For rev 5/6,
// the document key is used directly.
func (enc *encrypt) decryptKey(objNumber, generationNumber int) []byte {
	if enc.enc.V >= 5 {
		// rev 5/6 (AES-256) uses the document key directly: no per-object derivation
		return enc.key
	}

	b := append(append([]byte(nil), enc.key...),
		byte(objNumber), byte(objNumber>>8), byte(objNumber>>16),
		byte(generationNumber), byte(generationNumber>>8))

	if enc.aes {
		b = append(b, "sAlT"...)
	}

	dk := md5.Sum(b)

	l := len(enc.key) + 5
	if l > 16 {
		l = 16
	}
	return dk[:l]
}

func (enc *encrypt) decryptStream(content []byte, ref model.ObjIndirectRef) ([]byte, error) {
	key := enc.decryptKey(ref.ObjectNumber, ref.GenerationNumber)
	if enc.aes {
		return decryptAESBytes(content, key)
	}
	return decryptRC4Bytes(content, key)
}

func decryptRC4Bytes(buf, key []byte) ([]byte, error) {
	c, err := rc4.NewCipher(key)
	if err != nil {
		return nil, err
	}
	c.XORKeyStream(buf, buf)
	return buf, nil
}

func decryptAESBytes(b, key []byte) ([]byte, error) {
	if len(b) < aes.BlockSize {
		return nil, errors.New("decryptAESBytes: ciphertext too short")
	}
	if len(b)%aes.BlockSize != 0 {
		return nil, errors.New("decryptAESBytes: ciphertext not a multiple of block size")
	}

	cb, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, aes.BlockSize)
	copy(iv, b[:aes.BlockSize])

	data := append([]byte(nil), b[aes.BlockSize:]...)
	if len(data) == 0 {
		return data, nil
	}
	cipher.NewCBCDecrypter(cb, iv).CryptBlocks(data, data)

	// Remove PKCS#7 padding, tolerating producers that emit invalid padding
	// rather than failing outright.
	if pad := int(data[len(data)-1]); pad > 0 && pad <= aes.BlockSize && pad <= len(data) {
		data = data[:len(data)-pad]
	}

	return data, nil
}

// decryptObject recursively walks o and decrypts the strings it contains.
// Streams are handled separately, through decryptStream.
func (enc *encrypt) decryptObject(o model.Object, ref model.ObjIndirectRef) (model.Object, error) {
	switch o := o.(type) {
	case model.ObjHexLiteral:
		dec, err := enc.decryptStream([]byte(o), ref)
		if err != nil {
			return nil, err
		}
		return model.ObjHexLiteral(dec), nil
	case model.ObjStringLiteral:
		dec, err := enc.decryptStream([]byte(o), ref)
		if err != nil {
			return nil, err
		}
		return model.ObjStringLiteral(dec), nil
	case model.ObjDict:
		var err error
		for k, v := range o {
			o[k], err = enc.decryptObject(v, ref)
			if err != nil {
				return nil, err
			}
		}
		return o, nil
	case model.ObjArray:
		var err error
		for i, v := range o {
			o[i], err = enc.decryptObject(v, ref)
			if err != nil {
				return nil, err
			}
		}
		return o, nil
	default:
		return o, nil
	}
}

// used only for the encrypt dict, where all objects should probably be direct
func (ctx *context) res(obj model.Object) model.Object {
	out, _ := ctx.resolve(obj)
	return out
}

func (ctx *context) processEncryptDict() (out model.Encrypt, o, u, oe, ue [48]byte, err error) {
	encryptO, err := ctx.resolve(ctx.trailer.encrypt)
	if err != nil {
		return out, o, u, [48]byte{}, [48]byte{}, err
	}
	d, _ := encryptO.(model.ObjDict)

	out.Filter, _ = ctx.res(d["Filter"]).(model.ObjName)
	out.SubFilter, _ = ctx.res(d["SubFilter"]).(model.ObjName)

	v, _ := ctx.res(d["V"]).(model.ObjInt)
	out.V = model.EncryptionAlgorithm(v)

	length, _ := ctx.res(d["Length"]).(model.ObjInt)
	if length != 0 {
		if length%8 != 0 {
			return out, o, u, oe, ue, fmt.Errorf("field Length must be a multiple of 8")
		}
		out.Length = uint8(length / 8)
	}

	cf, _ := ctx.res(d["CF"]).(model.ObjDict)
	out.CF = make(map[model.ObjName]model.CrypFilter, len(cf))
	for name, c := range cf {
		out.CF[model.ObjName(name)] = ctx.processCryptFilter(c)
	}
	out.StmF, _ = ctx.res(d["StmF"]).(model.ObjName)
	out.StrF, _ = ctx.res(d["StrF"]).(model.ObjName)
	out.EFF, _ = ctx.res(d["EFF"]).(model.ObjName)

	p, _ := ctx.res(d["P"]).(model.ObjInt)
	out.P = model.UserPermissions(p)

	// subtypes
	if out.Filter == "Standard" || out.Filter == "" {
		var std model.EncryptionStandard
		std, o, u, oe, ue, err = ctx.processStandardSecurityHandler(d)
		if err != nil {
			return out, o, u, oe, ue, err
		}
		out.EncryptionHandler = std
	} else {
		out.EncryptionHandler = ctx.processPublicKeySecurityHandler(d)
	}

	return out, o, u, oe, ue, nil
}

func (ctx *context) processStandardSecurityHandler(dict model.ObjDict) (out model.EncryptionStandard, o, u, oe, ue [48]byte, err error) {
	r, _ := ctx.res(dict["R"]).(model.ObjInt)
	out.R = uint8(r)

	oStr, _ := IsString(ctx.res(dict["O"]))
	if len(oStr) < 32 {
		return out, o, u, oe, ue, fmt.Errorf("expected at least 32-byte string for entry O, got %d bytes", len(oStr))
	}
	copy(o[:], oStr)
	copy(out.O[:], oStr)

	uStr, _ := IsString(ctx.res(dict["U"]))
	if len(uStr) < 32 {
		return out, o, u, oe, ue, fmt.Errorf("expected at least 32-byte string for entry U, got %d bytes", len(uStr))
	}
	copy(u[:], uStr)
	copy(out.U[:], uStr)

	if oeStr, ok := IsString(ctx.res(dict["OE"])); ok {
		copy(oe[:], oeStr)
	}
	if ueStr, ok := IsString(ctx.res(dict["UE"])); ok {
		copy(ue[:], ueStr)
	}

	if meta, ok := ctx.res(dict["EncryptMetadata"]).(model.ObjBool); ok {
		out.DontEncryptMetadata = !bool(meta)
	}
	return out, o, u, oe, ue, nil
}

func (ctx *context) processPublicKeySecurityHandler(dict model.ObjDict) model.EncryptionPublicKey {
	rec, _ := ctx.res(dict["Recipients"]).(model.ObjArray)
	out := make(model.EncryptionPublicKey, len(rec))
	for i, re := range rec {
		out[i], _ = IsString(ctx.res(re))
	}
	return out
}

func (ctx *context) processCryptFilter(crypt model.Object) model.CrypFilter {
	cryptDict, _ := ctx.res(crypt).(model.ObjDict)
	var out model.CrypFilter
	out.CFM, _ = ctx.res(cryptDict["CFM"]).(model.ObjName)
	out.AuthEvent, _ = ctx.res(cryptDict["AuthEvent"]).(model.ObjName)
	l, _ := ctx.res(cryptDict["Length"]).(model.ObjInt)
	out.Length = int(l)
	recipients := ctx.res(cryptDict["Recipients"])
	if rec, ok := IsString(recipients); ok {
		out.Recipients = []string{rec}
	} else if ar, ok := recipients.(model.ObjArray); ok {
		out.Recipients = make([]string, len(ar))
		for i, re := range ar {
			out.Recipients[i], _ = IsString(ctx.res(re))
		}
	}
	if enc, ok := ctx.res(cryptDict["EncryptMetadata"]).(model.ObjBool); ok {
		out.DontEncryptMetadata = !bool(enc)
	}
	return out
}
