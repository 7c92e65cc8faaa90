package render

import "html/template"

const glyphBlank = `<path stroke="none" d="M0 0h24v24H0z" fill="none"></path>`

const glyphFile = glyphBlank +
	`<path d="M14 3v4a1 1 0 0 0 1 1h4"></path>` +
	`<path d="M17 21h-10a2 2 0 0 1 -2 -2v-14a2 2 0 0 1 2 -2h7l5 5v11a2 2 0 0 1 -2 2z"></path>`

const glyphFolder = glyphBlank +
	`<path d="M9 3a1 1 0 0 1 .608 .206l.1 .087l2.706 2.707h6.586a3 3 0 0 1 2.995 2.824l.005 .176v8a3 3 0 0 1 -2.824 2.995l-.176 .005h-14a3 3 0 0 1 -2.995 -2.824l-.005 -.176v-11a3 3 0 0 1 2.824 -2.995l.176 -.005h4z" stroke-width="0" fill="#ffb900"></path>`

// glyphs holds the drawings for identifiers that do not use the plain
// file outline.
var glyphs = map[string]template.HTML{
	IconGeneric: glyphFile,
	IconFolder:  glyphFolder,
	IconFolderSymlink: glyphFolder +
		`<path d="M8 15v-1a2 2 0 0 1 2 -2h5" stroke="#000000"></path>` +
		`<path d="M13 10l2 2l-2 2" stroke="#000000"></path>`,
	IconSymlink: glyphFile +
		`<path d="M9 17v-1a2 2 0 0 1 2 -2h4"></path>` +
		`<path d="M13 12l2 2l-2 2"></path>`,
	IconGoUp: glyphBlank +
		`<path d="M18 18h-6a3 3 0 0 1 -3 -3v-10l-4 4m8 0l-4 -4"></path>`,
	"image": glyphBlank +
		`<path d="M15 8h.01"></path>` +
		`<path d="M3 6a3 3 0 0 1 3 -3h12a3 3 0 0 1 3 3v12a3 3 0 0 1 -3 3h-12a3 3 0 0 1 -3 -3v-12z"></path>` +
		`<path d="M3 16l5 -5c.928 -.893 2.072 -.893 3 0l5 5"></path>` +
		`<path d="M14 14l1 -1c.928 -.893 2.072 -.893 3 0l3 3"></path>`,
	"video": glyphBlank +
		`<path d="M15 10l4.553 -2.276a1 1 0 0 1 1.447 .894v6.764a1 1 0 0 1 -1.447 .894l-4.553 -2.276v-4z"></path>` +
		`<path d="M3 6m0 2a2 2 0 0 1 2 -2h8a2 2 0 0 1 2 2v8a2 2 0 0 1 -2 2h-8a2 2 0 0 1 -2 -2z"></path>`,
	"audio": glyphBlank +
		`<path d="M3 17a3 3 0 1 0 6 0a3 3 0 0 0 -6 0"></path>` +
		`<path d="M13 17a3 3 0 1 0 6 0a3 3 0 0 0 -6 0"></path>` +
		`<path d="M9 17v-13h10v13"></path>` +
		`<path d="M9 8h10"></path>`,
	"archive": glyphBlank +
		`<path d="M6 20.735a2 2 0 0 1 -1 -1.735v-14a2 2 0 0 1 2 -2h7l5 5v11a2 2 0 0 1 -2 2h-1"></path>` +
		`<path d="M11 17a2 2 0 0 1 2 2v2a1 1 0 0 1 -1 1h-2a1 1 0 0 1 -1 -1v-2a2 2 0 0 1 2 -2z"></path>` +
		`<path d="M11 5l-1 0"></path>` +
		`<path d="M13 7l-1 0"></path>` +
		`<path d="M11 9l-1 0"></path>` +
		`<path d="M13 11l-1 0"></path>`,
	"db": glyphBlank +
		`<path d="M12 6m-8 0a8 3 0 1 0 16 0a8 3 0 1 0 -16 0"></path>` +
		`<path d="M4 6v6a8 3 0 0 0 16 0v-6"></path>` +
		`<path d="M4 12v6a8 3 0 0 0 16 0v-6"></path>`,
	"email": glyphBlank +
		`<path d="M3 7a2 2 0 0 1 2 -2h14a2 2 0 0 1 2 2v10a2 2 0 0 1 -2 2h-14a2 2 0 0 1 -2 -2v-10z"></path>` +
		`<path d="M3 7l9 6l9 -6"></path>`,
	"cert": glyphBlank +
		`<path d="M15 15m-3 0a3 3 0 1 0 6 0a3 3 0 1 0 -6 0"></path>` +
		`<path d="M13 17.5v4.5l2 -1.5l2 1.5v-4.5"></path>` +
		`<path d="M10 19h-5a2 2 0 0 1 -2 -2v-10c0 -1.1 .9 -2 2 -2h14a2 2 0 0 1 2 2v10a2 2 0 0 1 -1 1.73"></path>` +
		`<path d="M6 9l12 0"></path>`,
	"keystore": glyphBlank +
		`<path d="M16.555 3.843l3.602 3.602a2.877 2.877 0 0 1 0 4.069l-2.643 2.643a2.877 2.877 0 0 1 -4.069 0l-.301 -.301l-6.558 6.558a2 2 0 0 1 -1.239 .578l-.175 .008h-1.172a1 1 0 0 1 -.993 -.883l-.007 -.117v-1.172a2 2 0 0 1 .467 -1.284l.119 -.13l.414 -.414h2v-2h2v-2l2.144 -2.144l-.301 -.301a2.877 2.877 0 0 1 0 -4.069l2.643 -2.643a2.877 2.877 0 0 1 4.069 0z"></path>` +
		`<path d="M15 9h.01"></path>`,
}

// Glyph is one entry of the inline SVG sprite.
type Glyph struct {
	ID   string
	Body template.HTML
}

// sprite returns the glyph for every known identifier. Identifiers
// without a dedicated drawing reuse the file outline.
func sprite() []Glyph {
	ids := iconIDs()
	out := make([]Glyph, 0, len(ids))
	for _, id := range ids {
		body, ok := glyphs[id]
		if !ok {
			body = glyphFile
		}
		out = append(out, Glyph{ID: id, Body: body})
	}
	return out
}
