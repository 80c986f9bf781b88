/*
Package ports declares the boundaries between the execution driver and the
outside world.

The driver only talks to a Terminal (send keystrokes, capture the pane), a
Confirmer (ask the operator), and a CursorStore (remember where we are).
Adapters in pkg/adapters provide tmux, file, redis and in-memory versions.
*/
package ports
