/*
Package driver implements the execution loop that walks a document's actions
against a live terminal.

The Driver is a small state machine over three values: the cursor (index of
the next action), the deferred modifiers set by "wait" and "keys" actions,
and whether the operator is still being asked before each command.

The cursor is persisted before every step, so a killed run resumes at the
same action. Reaching the end resets it to zero.

	d := driver.New(doc,
		driver.WithStore(file.New("nextstep")),
		driver.WithTerminal(tmux.NewController(runner, target)),
		driver.WithObserver(detect.New(term)),
		driver.WithConfirmer(confirm.NewText(os.Stdin, os.Stdout)),
	)
	err := d.Run(ctx)
*/
package driver
