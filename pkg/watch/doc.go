// Package watch recompiles YAML sources when they change.
//
// A Session runs a compile, watches the directory of every file that
// compile read (fsnotify, debounced) and recompiles on change. An optional
// cron schedule (robfig/cron) forces periodic recompiles, and an optional
// Hook command runs after each successful compile.
//
//	session, err := watch.NewSession(watch.Options{
//	    Watcher:  &watch.Config{Debounce: 100 * time.Millisecond, Extensions: []string{".yml"}},
//	    Schedule: "0 * * * *",
//	    Hook:     &watch.Hook{Command: []string{"make", "deploy"}},
//	}, compile)
//	if err != nil {
//	    return err
//	}
//	return session.Run(ctx)
package watch
