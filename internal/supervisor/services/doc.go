// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package services adapts PostPulse components to suture.Service.

HTTPServerService wraps an *http.Server: ListenAndServe runs in a goroutine
and context cancellation triggers Shutdown with a timeout.

SchedulerService wraps the pipeline scheduler's Start/Stop lifecycle: Start
on entry, block until the context is canceled, then Stop, which waits for
an in-flight run to finish.

Both implement fmt.Stringer so suture can name them in its events.
*/
package services
