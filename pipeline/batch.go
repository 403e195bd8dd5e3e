// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"sync"
)

// Query is one entry of a batch.
type Query struct {
	UserID string
	Text   string
}

// BatchResult pairs a query with its outcome. Result may be set together
// with Err when only the context commit failed.
type BatchResult struct {
	Query  Query
	Result *Result
	Err    error
}

// RunBatch answers queries on the worker pool and returns results in input order.
// Queries for different users run concurrently. Queries for the same user run
// one after another in input order, so each sees the answers committed by the
// ones before it.
func (o *Orchestrator) RunBatch(ctx context.Context, queries []Query) []BatchResult {
	results := make([]BatchResult, len(queries))
	if len(queries) == 0 {
		return results
	}

	var users []string
	byUser := make(map[string][]int)
	for i, q := range queries {
		results[i].Query = q
		if _, ok := byUser[q.UserID]; !ok {
			users = append(users, q.UserID)
		}
		byUser[q.UserID] = append(byUser[q.UserID], i)
	}

	var wg sync.WaitGroup
	for _, userID := range users {
		indexes := byUser[userID]
		wg.Add(1)
		err := o.pool.Submit(func() {
			defer wg.Done()
			for _, i := range indexes {
				if err := ctx.Err(); err != nil {
					results[i].Err = err
					continue
				}
				results[i].Result, results[i].Err = o.Run(ctx, queries[i].UserID, queries[i].Text)
			}
		})
		if err != nil {
			wg.Done()
			o.logger.Error("failed to submit batch work", "user", userID, "err", err)
			for _, i := range indexes {
				results[i].Err = err
			}
		}
	}
	wg.Wait()

	return results
}
