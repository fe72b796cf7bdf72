// Package generate produces the per-item content artifacts: a comparison
// article, a migration guide, and paired code examples, written under the
// output directory by slug. It implements the runner's Processor contract;
// the worker loop only sees success or failure.
//
// The provider is any OpenAI-compatible chat-completions endpoint. Requests
// retry with exponential backoff on transient failures. Prompt wording here
// is deliberately plain; tuning it is an editorial concern, not an
// engineering one.
package generate
