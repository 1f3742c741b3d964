package accounts

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"regexp"

	"github.com/disintegration/imaging"
)

const (
	avatarField   = "avatar"
	maxAvatarSize = 1000000
	avatarWidth   = 250
	avatarHeight  = 250
)

var (
	ErrAvatarTooLarge    = errors.New("file too large")
	ErrUnsupportedAvatar = errors.New("please upload an image")
	ErrUndecodableAvatar = errors.New("unable to process image")
)

// The extension match is deliberately case sensitive: ".JPG" is rejected.
var avatarExtRegexp = regexp.MustCompile(`\.(jpg|jpeg|png)$`)

// readAvatarUpload pulls the avatar file out of a multipart request,
// rejects it on size or extension before any decode is attempted, and
// returns the normalized bytes.
func readAvatarUpload(r *http.Request) ([]byte, error) {
	if err := r.ParseMultipartForm(maxAvatarSize); err != nil {
		return nil, ErrUnsupportedAvatar
	}

	file, header, err := r.FormFile(avatarField)
	if err != nil {
		return nil, ErrUnsupportedAvatar
	}
	defer file.Close()

	if err := validateAvatarUpload(header.Filename, header.Size); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrUndecodableAvatar
	}

	return normalizeAvatar(data)
}

func validateAvatarUpload(filename string, size int64) error {
	if size > maxAvatarSize {
		return ErrAvatarTooLarge
	}
	if !avatarExtRegexp.MatchString(filename) {
		return ErrUnsupportedAvatar
	}
	return nil
}

// normalizeAvatar decodes the upload, scales it to exactly 250x250 without
// preserving the aspect ratio, and re-encodes it as PNG. The original bytes
// are not retained.
func normalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrUndecodableAvatar
	}

	resized := imaging.Resize(img, avatarWidth, avatarHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, ErrUndecodableAvatar
	}

	return buf.Bytes(), nil
}
