/*
Package domain contains the core models shared by the rehearsal driver.

It is kept free of I/O and persistence so that the extractor, the driver and
the adapters can agree on a single vocabulary.

# Key Entities

  - Action: one extracted snippet with a method tag and a payload.
  - Slide: a document section grouping zero or more Actions.
  - Document: the flat, ordered Action sequence plus the slides it came from.
  - DeferredModifiers: the pending wait/stop pair applied to the next effectful Action.
  - Outcome: the result of dispatching one command (success, failure, timeout).
  - Decision: the operator's answer before an effectful Action.
*/
package domain
