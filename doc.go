/*
Package rehearse replays the commands of a workshop slide deck in a live tmux
pane, one at a time, and checks that each of them succeeds.

A deck is a Markdown document split into slides by "---" lines. Commands to
run live in ".exercise[ ... ]" regions as fenced snippets whose first word
names the method:

	.exercise[
	```bash
	docker run -d -p 80:80 nginx
	```
	]

Three methods are understood:

  - bash: the payload is typed into the shell, followed by Enter.
  - wait: the next bash command is done once its payload shows up on screen.
  - keys: after the next bash command is done, these keys are sent (for
    example ^C to stop a server) and the terminal is given time to settle.

Completion is detected by polling the pane. Without a wait condition, a
command is done when the shell prompt comes back; its exit status is then
read by typing "echo <token> $?" and finding the token on screen.

The position in the deck is kept in a cursor (the "nextstep" file by
default), saved before every action. A stopped or crashed run picks up
where it left off; a finished run resets the cursor to zero.

# Usage

	doc, err := rehearse.Open("slides/intro.md", logger)
	if err != nil {
		return err
	}
	term := tmux.NewController(tmux.NewRunner("tmux", ""), "workshop:0")
	d := driver.New(doc,
		driver.WithStore(file.New(file.DefaultPath)),
		driver.WithTerminal(term),
		driver.WithObserver(detect.New(term)),
		driver.WithConfirmer(confirm.NewText(os.Stdin, os.Stdout)),
	)
	return d.Run(ctx)

The rehearse command wires all of this from flags and an optional
rehearse.yaml file.
*/
package rehearse
