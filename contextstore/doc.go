// Package contextstore keeps each user's prior context and selects the entry
// most relevant to a new query.
//
// Entries are stored as text by a storage.ContextRepository. Selection embeds
// the query and every candidate entry and picks the highest cosine similarity;
// on equal scores the earliest inserted entry wins. Embeddings are cached in
// process and never persisted.
package contextstore
