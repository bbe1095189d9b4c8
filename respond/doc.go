// Package respond generates grounded text responses from indexed chunks.
//
// The Responder implements retrieval-augmented question answering: the
// question is embedded, the nearest chunks are pulled from the index,
// and a fixed instruction template submits their newline-joined text plus
// the question to the generative model. The Screener reuses the same
// retrieval path to rank resumes against a job description and
// summarize the hits.
package respond
