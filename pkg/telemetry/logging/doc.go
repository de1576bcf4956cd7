// Package logging provides structured logging for yamlinc.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - Console output with tagged, colored diagnostic lines
//   - JSON and text formats for machine consumption
//   - A "done" severity between info and warn
//   - A quiet mode that discards everything
//   - Context-aware logging with compile IDs
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logger.Info("Analyze", "file", "app.yml")     //    Analyze : app.yml
//	logger.Error("Problem", "error", "not found") //  > Problem : not found
//	logger.Done("Compiled", "file", "app.yml")    //    Compiled : app.yml
//
//	ctx := logging.WithCompileID(ctx, id)
//	logger.InfoContext(ctx, "Include", "file", "base.yml") // carries compile_id
//
// Loggers are passed explicitly to the components that need them; there is
// no package-level default.
package logging
