// Package controller hosts the synthesizer voices and effects behind one
// Controller contract and switches between them with MainController.
//
// Two goroutines share a controller. The UI goroutine calls Update at the
// polling rate, reading control inputs and publishing parameters through
// Param values and Trigger counters. The audio goroutine calls Process once
// per block and is the only one that touches DSP state. MainController
// loads the active controller index once per block, so a block is always
// rendered by a single controller.
package controller
