package icon

import "strings"

// Family groups extensions that share an emoji hint.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyImage
	FamilyDocument
	FamilyVideo
	FamilyAudio
	FamilyArchive
	FamilyScript
	FamilyExecutable
)

var families = map[string]Family{
	"png": FamilyImage, "jpg": FamilyImage, "jpeg": FamilyImage, "gif": FamilyImage,
	"bmp": FamilyImage, "webp": FamilyImage, "tif": FamilyImage, "tiff": FamilyImage,
	"ico": FamilyImage, "svg": FamilyImage,

	"txt": FamilyDocument, "md": FamilyDocument, "pdf": FamilyDocument, "doc": FamilyDocument,
	"docx": FamilyDocument, "xls": FamilyDocument, "xlsx": FamilyDocument, "ppt": FamilyDocument,
	"pptx": FamilyDocument, "odt": FamilyDocument, "rtf": FamilyDocument, "csv": FamilyDocument,
	"json": FamilyDocument, "yaml": FamilyDocument, "yml": FamilyDocument, "toml": FamilyDocument,

	"mp4": FamilyVideo, "mkv": FamilyVideo, "avi": FamilyVideo, "mov": FamilyVideo,
	"wmv": FamilyVideo, "webm": FamilyVideo,

	"mp3": FamilyAudio, "wav": FamilyAudio, "flac": FamilyAudio, "ogg": FamilyAudio,
	"m4a": FamilyAudio, "aac": FamilyAudio,

	"zip": FamilyArchive, "7z": FamilyArchive, "rar": FamilyArchive, "tar": FamilyArchive,
	"gz": FamilyArchive, "xz": FamilyArchive, "bz2": FamilyArchive,

	"ps1": FamilyScript, "py": FamilyScript, "js": FamilyScript, "sh": FamilyScript,
	"vbs": FamilyScript, "rb": FamilyScript, "pl": FamilyScript,

	"exe": FamilyExecutable, "msi": FamilyExecutable, "bat": FamilyExecutable,
	"cmd": FamilyExecutable, "com": FamilyExecutable, "scr": FamilyExecutable,
	"app": FamilyExecutable,
}

var familyEmoji = map[Family]string{
	FamilyImage:    "🖼️",
	FamilyDocument: "📄",
	FamilyVideo:    "🎬",
	FamilyAudio:    "🎵",
	FamilyArchive:  "📦",
	FamilyScript:   "📜",
}

const (
	FolderEmoji     = "📁"
	ExecutableEmoji = "🚀"
	DocumentEmoji   = "📄"
)

// FamilyOf looks up ext (with or without the leading dot, any case).
func FamilyOf(ext string) Family {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return families[ext]
}
