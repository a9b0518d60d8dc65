package futures_wss

import (
	"crypto/md5"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
)

type Signer struct {
	key    string
	secret string
}

func NewSigner(key, secret string) *Signer {
	return &Signer{key: key, secret: secret}
}

func (s *Signer) Enabled() bool {
	return s.key != "" && s.secret != ""
}

// Sign returns the uppercase md5 of the form encoded sorted params followed by secret_key
func (s *Signer) Sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(formEscape(k))
		b.WriteByte('=')
		b.WriteString(formEscape(params[k]))
		b.WriteByte('&')
	}
	b.WriteString("secret_key=")
	b.WriteString(formEscape(s.secret))

	sum := md5.Sum([]byte(b.String()))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

// SignParams returns a copy of params carrying api_key and sign
func (s *Signer) SignParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+2)
	for k, v := range params {
		out[k] = v
	}
	out["api_key"] = s.key
	out["sign"] = s.Sign(out)
	return out
}

// formEscape matches application/x-www-form-urlencoded, which keeps '*' and escapes '~'
func formEscape(v string) string {
	e := url.QueryEscape(v)
	if strings.ContainsAny(e, "~%") {
		e = strings.ReplaceAll(e, "~", "%7E")
		e = strings.ReplaceAll(e, "%2A", "*")
	}
	return e
}
