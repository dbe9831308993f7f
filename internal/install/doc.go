// Package install runs package-manager installs inside a generated project.
//
// An Executor runs external commands. On a terminal it shows a spinner and
// keeps the command's output out of the way; otherwise every output line is
// streamed with a prefix naming the tool. Package managers are looked up in
// a Registry, so tests and callers can swap the commands that run:
//
//	inst := install.New(dir, nil)
//	err := inst.Install(ctx, install.Options{NPM: true})
//
// Executors accept a command constructor, which tests replace with a helper
// process to avoid depending on npm being installed.
package install
