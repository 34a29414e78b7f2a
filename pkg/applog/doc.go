// Package applog is a leveled logging facade with a swappable sink and
// best-effort persistence of every line to a per-app log file.
//
// Build a Logger at startup and pass it to the code that logs:
//
//	logger, err := applog.New(applog.Options{
//		App:     applog.LocalApp("com.example.notes"),
//		LogName: "notes.log",
//	})
//	if err != nil {
//		return err
//	}
//	defer logger.Close(context.Background())
//
//	logger.W("sync took too long", applog.Here())
//	logger.E("upload failed", applog.Err(err), applog.Tag("uploader"))
//
// Every call appends a record to <filesDir>/log/<logName>, whatever the
// configured level, and then hands the message to the sink. The default sink
// drops messages below the minimum level and writes the rest to the console.
// Logging never returns an error and never panics on I/O failures.
//
// For call sites that cannot receive a Logger, Init installs one as the
// process default used by the package-level V, D, I, W, E and A functions.
package applog
