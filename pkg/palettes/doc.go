// Package palettes provides a registry of named HCL palettes for embedding
// in other programs. A Registry starts with the embedded default palettes
// and can load user palette files in the INI (.conf) or Lua (.lua) format.
//
// # Basic Usage
//
//	r, err := palettes.New(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	colors, err := r.Colors("Blue-Red", 5, palette.Settings{})
//	// #023FA5 #A1A6C8 #E2E2E2 #CA9CA4 #8E063B
//
// # User Palettes
//
// Load adds palette files or directories. Palettes replace earlier ones
// with the same name, compared case-insensitively:
//
//	if err := r.Load(config.DefaultSearchPaths()...); err != nil {
//		log.Fatal(err)
//	}
//
// Use [NewFromFS] to read user palettes from an [io/fs.FS] such as an
// embed.FS.
//
// # Hot Reload
//
// With Options.WatchConfig set, files passed to Load are watched and
// reloaded after WatchDebounce. A failed reload keeps the previous
// palettes and is reported through the Logger, the [ErrorHandler] and the
// registry's [ErrorTracker]:
//
//	r.SetErrorHandler(func(err error) {
//		log.Printf("palette error: %v", err)
//	})
//
// Handlers are called asynchronously; do not block in them.
package palettes
