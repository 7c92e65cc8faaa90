package render

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/jamesainslie/genindex/pkg/genindex/types"
)

// Icon identifiers used outside the extension table.
const (
	IconFolder        = "folder"
	IconFolderSymlink = "folder-symlink"
	IconSymlink       = "symlink"
	IconGeneric       = "generic"
	IconGoUp          = "go-up"
)

// iconByName maps a lowercase extension (with dot) or an exact
// extensionless file name to an icon identifier.
var iconByName = map[string]string{
	"id_rsa":  "cert",
	"LICENSE": "license",
	"README":  "license",

	".jpg": "image", ".jpeg": "image", ".png": "image", ".gif": "image",
	".webp": "image", ".tiff": "image", ".bmp": "image", ".heif": "image",
	".heic": "image", ".svg": "image",

	".mp4": "video", ".mov": "video", ".mpeg": "video", ".avi": "video",
	".ogv": "video", ".webm": "video", ".mkv": "video", ".vob": "video",
	".gifv": "video", ".3gp": "video",

	".mp3": "audio", ".m4a": "audio", ".aac": "audio", ".ogg": "audio",
	".flac": "audio", ".wav": "audio", ".wma": "audio", ".midi": "audio",
	".cda": "audio", ".aiff": "audio", ".aif": "audio", ".caf": "audio",

	".pdf": "pdf",
	".csv": "csv",

	".txt": "doc", ".doc": "doc", ".docx": "doc", ".odt": "doc",
	".fodt": "doc", ".rtf": "doc", ".abw": "doc", ".pages": "doc",

	".xls": "sheet", ".xlsx": "sheet", ".ods": "sheet", ".fods": "sheet",
	".numbers": "sheet",

	".ppt": "ppt", ".pptx": "ppt", ".odp": "ppt", ".fodp": "ppt",

	".zip": "archive", ".gz": "archive", ".xz": "archive", ".tar": "archive",
	".7z": "archive", ".rar": "archive", ".zst": "archive", ".bz2": "archive",
	".bzip": "archive", ".arj": "archive", ".z": "archive",

	".deb": "deb", ".dpkg": "deb",

	".rpm": "dist", ".exe": "dist", ".flatpak": "dist", ".appimage": "dist",
	".jar": "dist", ".msi": "dist", ".apk": "dist",

	".ps1": "ps1",
	".py":  "py", ".pyc": "py", ".pyo": "py", ".egg": "py",

	".sh": "sh", ".bash": "sh", ".com": "sh", ".bat": "sh", ".dll": "sh",
	".so": "sh",

	".dmg": "dmg",
	".iso": "iso", ".img": "iso",

	".md": "md", ".mdown": "md", ".markdown": "md",

	".ttf": "font", ".ttc": "font", ".otf": "font", ".woff": "font",
	".woff2": "font", ".eof": "font", ".apf": "font",

	".go": "go",

	".html": "html", ".htm": "html", ".php": "html", ".php3": "html",
	".asp": "html", ".aspx": "html",

	".css": "css", ".scss": "css", ".less": "css",

	".json": "json", ".json5": "json", ".jsonc": "json",

	".ts":  "ts",
	".sql": "sql",

	".db": "db", ".sqlite": "db", ".mdb": "db", ".odb": "db",

	".eml": "email", ".email": "email", ".mailbox": "email", ".mbox": "email",
	".msg": "email",

	".crt": "cert", ".pem": "cert", ".x509": "cert", ".cer": "cert",
	".der": "cert", ".ca-bundle": "cert",

	".key": "keystore", ".keystore": "keystore", ".jks": "keystore",
	".p12": "keystore", ".pfx": "keystore", ".pub": "keystore",
}

// IconFor returns the sprite identifier for an entry.
func IconFor(e types.DirectoryEntry) string {
	switch {
	case e.Kind == types.KindDirectory:
		return IconFolder
	case e.Kind == types.KindSymlink && e.TargetKind == types.KindDirectory:
		return IconFolderSymlink
	case e.Kind == types.KindSymlink && e.TargetKind == types.KindFile:
		return IconSymlink
	case e.Kind == types.KindFile:
		return iconForFileName(e.Name)
	default:
		return IconGeneric
	}
}

func iconForFileName(name string) string {
	key := name
	if strings.Contains(name, ".") {
		key = strings.ToLower(filepath.Ext(name))
	}
	if icon, ok := iconByName[key]; ok {
		return icon
	}
	return IconGeneric
}

// iconIDs returns every identifier the sprite must define, sorted.
func iconIDs() []string {
	seen := map[string]bool{
		IconFolder:        true,
		IconFolderSymlink: true,
		IconSymlink:       true,
		IconGeneric:       true,
		IconGoUp:          true,
	}
	for _, id := range iconByName {
		seen[id] = true
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
