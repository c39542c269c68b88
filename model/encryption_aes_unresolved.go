//go:build pdfcore_aes256_unresolved

package model

// AuthenticatePasswords compare the given passwords to the hash found in a PDF file, returning
// `true` if one of the password is correct, as well as the encryption key.
//
// Excluded from the default build: it needs EncryptionStandard.OE, .UE and
// .Perms, and 48-byte O/U fields, none of which exist on EncryptionStandard
// (a gap present upstream too, not introduced here). Adding them is a data
// model decision outside the scope of a mechanical build fix. See
// BUILD_FLAGS.json "unresolved".
func (s *AESSecurityHandler) AuthenticatePasswords(ownerPassword, userPassword string, enc EncryptionStandard) ([]byte, bool) {
	key, ok := s.authOwnerPassword(ownerPassword, enc.O, enc.U, enc.OE)
	if !ok {
		key, ok = s.authUserPassword(userPassword, enc.O, enc.U, enc.UE)
	}

	ok = ok && s.validatePermissions(key, enc.Perms)
	return key[:], ok
}
