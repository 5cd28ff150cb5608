package base64

import (
	b64 "encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidDataURI = errors.New("invalid base64 data URI")

const marker = ";base64,"

func GetContentType(file string) string {
	start := len("data:")
	end := strings.Index(file, marker)

	if end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode splits a data URI ("data:<type>;base64,<payload>") into its decoded
// bytes and content type.
func Decode(file string) ([]byte, string, error) {
	contentType := GetContentType(file)
	if contentType == "" {
		return nil, "", ErrInvalidDataURI
	}

	idx := strings.Index(file, marker)

	data, err := b64.StdEncoding.DecodeString(file[idx+len(marker):])
	if err != nil {
		return nil, "", ErrInvalidDataURI
	}

	return data, contentType, nil
}
