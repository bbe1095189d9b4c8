// Package pinecone implements the vector index interface against
// Pinecone serverless indexes.
//
// Vectors carry entry text and metadata as Pinecone metadata fields, with
// the text itself stored under the reserved "text" key. Index creation
// defaults to serverless on aws/us-east-1 and blocks until the index
// reports ready.
package pinecone
