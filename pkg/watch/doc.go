// Package watch implements continuous retention auditing over a set
// of directories.
//
// The package has three components:
//
//   - Auditor: one evaluation pass. It lists the watched directories,
//     runs the retention rules over their entries and reports which
//     items the rules keep and which they discard. Every sweep gets a
//     unique run id that is carried through log output.
//
//   - Scheduler: drives the auditor on a cron schedule, e.g. hourly.
//
//   - Watcher: reacts to filesystem changes. It debounces event
//     bursts so an archiver dropping many files triggers one rescan.
//
// The auditor observes and reports; it never deletes anything. Acting
// on a report is the operator's business.
//
// Usage:
//
//	auditor, err := watch.NewAuditor(&watch.AuditorConfig{
//		Paths: []string{"/var/backups/db"},
//		Rules: "days7,weeks4,months12",
//	}, collector, logger)
//	if err != nil {
//		return err
//	}
//
//	scheduler := watch.NewScheduler(auditor, "@hourly")
//	if err := scheduler.Start(ctx); err != nil {
//		return err
//	}
//	defer scheduler.Stop()
//
// When rescan-on-change is enabled, a Watcher runs alongside the
// scheduler:
//
//	watcher, err := watch.NewWatcher(&watch.WatcherConfig{
//		Paths: []string{"/var/backups/db"},
//	}, collector)
//	if err != nil {
//		return err
//	}
//	go watcher.Watch(ctx, func() {
//		auditor.Run(ctx, "fsevent")
//	})
//	defer watcher.Stop()
package watch
