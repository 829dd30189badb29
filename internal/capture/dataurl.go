package capture

import (
	"encoding/base64"
	"regexp"

	perrors "github.com/orgball2608/photoshare-client/pkg/errors"
)

// dataURLHeader matches "data:<mime>;base64,". The match runs to the last
// ";base64," because the base64 alphabet has neither ';' nor ','.
var dataURLHeader = regexp.MustCompile(`(?s)^data:(.*);base64,`)

// EncodeDataURL renders data as a self-describing base64 data URL. mimeType is
// written verbatim and any string round-trips through DecodeDataURL.
func EncodeDataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL is the inverse of EncodeDataURL. Malformed input fails with a
// decode error and never panics.
func DecodeDataURL(dataURL string) ([]byte, string, error) {
	loc := dataURLHeader.FindStringSubmatchIndex(dataURL)
	if loc == nil {
		return nil, "", perrors.Decode(nil, "data URL header not recognised")
	}

	mimeType := dataURL[loc[2]:loc[3]]
	data, err := base64.StdEncoding.DecodeString(dataURL[loc[1]:])
	if err != nil {
		return nil, "", perrors.Decode(err, "data URL payload is not base64")
	}
	return data, mimeType, nil
}
