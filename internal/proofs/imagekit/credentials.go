package imagekit

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"

	"github.com/google/uuid"

	dErrors "crease/pkg/domain-errors"
)

// Credential authorizes one upload session against the object store.
// The signature covers token‖expire with the server-held private key, which is
// the scheme the upload API verifies. Anyone may mint one: the credential
// endpoint performs no caller authentication, a deliberate simplification.
type Credential struct {
	Token     string `json:"token"`
	Expire    int64  `json:"expire"` // unix seconds
	Signature string `json:"signature"`
}

// IssueCredential generates a fresh random token valid for the configured TTL.
func (c *Client) IssueCredential() (Credential, error) {
	token := uuid.New().String()
	expire := c.now().Add(c.ttl).Unix()

	signature, err := sign(c.privateKey, token+strconv.FormatInt(expire, 10))
	if err != nil {
		return Credential{}, dErrors.Wrap(err, dErrors.CodeCredential, "sign upload credential")
	}

	return Credential{
		Token:     token,
		Expire:    expire,
		Signature: signature,
	}, nil
}

// sign computes the hex HMAC-SHA1 digest the upload API expects.
func sign(key, message string) (string, error) {
	mac := hmac.New(sha1.New, []byte(key))
	if _, err := mac.Write([]byte(message)); err != nil {
		return "", err
	}
	return hex.EncodeToString(mac.Sum(nil)), nil
}
