//    AyracGoServer
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package db

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/unicode/norm"
)

// NormalizeSentence - NFC and trimmed; "ş" typed as s+cedilla and "ş" typed precomposed are the same sentence
func NormalizeSentence(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// CacheKey - hex blake2b-256 of the normalized sentence
func CacheKey(sentence string) string {
	sum := blake2b.Sum256([]byte(NormalizeSentence(sentence)))
	return hex.EncodeToString(sum[:])
}
