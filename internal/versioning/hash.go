// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

package versioning

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

// DigestSize is the SHAKE128 output length in bytes. Hex-encoded it is 32 chars.
const DigestSize = 16

// dateLayout renders calendar dates (midnight UTC) in hashed content.
const dateLayout = "2006-01-02"

// Hash returns the content hash of the given business fields.
//
// Fields are rendered with [Canonical] and concatenated in order without a
// separator, then digested with SHAKE128 to [DigestSize] bytes and hex
// encoded in lower case. The same fields in the same order always produce the
// same hash.
func Hash(fields ...any) string {
	var builder strings.Builder
	for _, field := range fields {
		builder.WriteString(Canonical(field))
	}

	digest := make([]byte, DigestSize)
	shake := sha3.NewShake128()
	_, _ = shake.Write([]byte(builder.String()))
	_, _ = shake.Read(digest)

	return hex.EncodeToString(digest)
}

// Canonical renders a single field the way [Hash] consumes it.
func Canonical(field any) string {
	switch v := field.(type) {
	case nil:
		return ""
	case string:
		return v
	case *string:
		if v == nil {
			return ""
		}
		return *v
	case bool:
		if v {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(v)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case *int64:
		if v == nil {
			return ""
		}
		return strconv.FormatInt(*v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case time.Time:
		return canonicalTime(v)
	case *time.Time:
		if v == nil {
			return ""
		}
		return canonicalTime(*v)
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func canonicalTime(t time.Time) string {
	utc := t.UTC()
	if utc.Hour() == 0 && utc.Minute() == 0 && utc.Second() == 0 && utc.Nanosecond() == 0 {
		return utc.Format(dateLayout)
	}
	return utc.Format(time.RFC3339Nano)
}
