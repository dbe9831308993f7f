// Package generator provides template rendering and file operations used to
// materialize a project skeleton.
//
// # Features
//
//   - Template rendering with naming helpers and a parse cache
//   - Operations that validate before executing (conflict checks, --force)
//   - Dry-run reporting without touching the destination
//
// # Usage
//
//	r := generator.NewRenderer()
//	content, err := r.RenderFS(templates, "README.md.template", data)
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Fs: dst, Path: "README.md", Content: content, Mode: 0644},
//	}
//	err = generator.Execute(ctx, ops, generator.ExecuteOptions{})
//
// All operations are validated before any of them executes, so a conflict in
// the last file leaves the destination untouched.
package generator
