// Package zenus is the composition root for the zenus note store.
//
// Notes ("blocks") are small ordered text entries kept either on local disk
// or on a remote zenus server. Callers get the same operations in both cases;
// the storage mode is picked once from the options.
//
// Local layout:
//
//	<root>/<id>.md          active notes
//	<root>/archive/<id>.md  archived notes
//
// Each file starts with a metadata header, a JSON object inside an HTML
// comment, followed by a blank line and the raw content:
//
//	<!-- {"title":"Groceries","isCollapsed":false,"order":3,...} -->
//
//	milk, eggs
//
// Usage:
//
//	svc, err := zenus.New(zenus.WithPath("./notes"), zenus.WithLogger(logger))
//
//	err = svc.SaveNote(ctx, zenus.NoteBlock{ID: "groceries", Title: "Groceries"})
//	err = svc.ArchiveNote(ctx, "groceries")
//
// Remote mode talks to `zenus serve` on another machine:
//
//	svc, err := zenus.New(zenus.WithRemote("http://nas:8888"), zenus.WithAuth(token))
package zenus
