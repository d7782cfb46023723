// PostPulse - Social Post Search and Sentiment Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/postpulse

/*
Package pipeline drives one run of the post sentiment pipeline.

A run executes three stages in a fixed order:

 1. fetch: search for posts, optionally only those newer than the stored
    watermark. Logs "Number of posts: N".
 2. persist: append the posts to the posts table. Logs "Posts saved to
    database".
 3. analyze: score the posts in batches and append the results to the
    sentiment table. Logs "Sentiment analyzed".

Persist and analyze only run when fetch returned posts. A failed stage
writes one ERROR row with the error message to the run log and the stages
after it are reported as skipped. Nothing is retried.

Every stage produces a StageResult; the Report of a run aggregates them
together with the per-post sentiment outcomes and any run log write that
failed:

	p, err := pipeline.New(ctx, cfg)
	if err != nil {
	    return err
	}
	defer p.Close()

	report := p.Run(ctx)
	if report.Failed() {
	    logging.Warn().Err(report.Err()).Msg("Run finished with errors")
	}

Runs on one Runner are serialized. TryRun returns ErrAlreadyRunning instead
of waiting, which is what the scheduler uses.
*/
package pipeline
