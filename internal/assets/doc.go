// Package assets provides the LaTeX project template copied by create.
//
// # Loader Architecture
//
//	TemplateLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - the built-in template, embedded at compile time
//	    └── FilesystemLoader  - a template directory on disk
//
// NewLoader picks one: an empty path selects the embedded template.
//
// # Template Layout
//
//	{template}/
//	├── main.tex       # master document with the insertion sentinel line
//	├── newman.sty     # \id, \fig, \tsp, \tsb, \envelope
//	├── src/           # article fragments, one directory per part
//	└── media/         # extracted figures, one directory per part
//
// A template is only usable when its master document contains the sentinel
// line; see Validate.
//
// # Security
//
// FilesystemLoader resolves symlinks in its base path. Copy refuses symlinks
// inside the template and writes only below the destination directory.
package assets
