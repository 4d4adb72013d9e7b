// Package render wraps the external programs a build shells out to:
// xelatex for typesetting, pdfunite for prepending the title page, rsync for
// publishing and git for committing the results.
//
// Every collaborator runs its command through an Executor. CommandExecutor
// runs real processes and forwards their output to debug logs;
// DryRunExecutor records the commands without running them so a build can
// show what it would do. Failures are tagged with services.ErrExternalTool,
// or services.ErrTimeout when the configured deadline expires.
package render
