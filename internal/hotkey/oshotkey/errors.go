package oshotkey

import "errors"

// ErrUnavailable means the binary was built without system hotkeys.
var ErrUnavailable = errors.New("system hotkeys are not available in this build")
