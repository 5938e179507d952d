// SPDX-License-Identifier: GPL-3.0-or-later
package domain

//go:generate mockgen -destination=mocks/taskqueue.go -package=mocks . TaskQueue

// TaskQueue dispatches fire-and-forget background work. Submitters get no
// handle back; outcomes are communicated through the store.
type TaskQueue interface {
	Submit(task func())
}
