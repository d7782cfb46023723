// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

// Package audit records the operational history of pipeline runs in the
// logs table.
//
// The run log is separate from the process log: it is data, queried with
// SQL next to the posts it describes. Each Info or Error call appends one
// row (id, log_type, log_message, created_at) synchronously, with the id
// taken as MAX(id)+1 inside the write transaction and created_at in UTC.
// The same message is mirrored to zerolog with the run id attached.
//
//	runLog := audit.NewLogger(db)
//	if err := runLog.Info(ctx, "Posts saved to database"); err != nil {
//	    // the pipeline reports this without masking the stage result
//	}
//
// MemoryStore implements the same Store interface in memory for tests.
package audit
