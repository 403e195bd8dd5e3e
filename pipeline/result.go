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
	"errors"
	"fmt"

	"github.com/poiesic/routerag/core"
)

// Input names an auxiliary input that a route may gather.
type Input int

const (
	InputContext Input = iota
	InputDocuments
)

func (i Input) String() string {
	switch i {
	case InputContext:
		return "context"
	case InputDocuments:
		return "documents"
	default:
		return fmt.Sprintf("Input(%d)", int(i))
	}
}

// Degradation records an input the route asked for but could not be gathered.
type Degradation struct {
	Input Input
	Err   error
}

func (d Degradation) Error() string {
	return fmt.Sprintf("%s skipped: %v", d.Input, d.Err)
}

func (d Degradation) Unwrap() error {
	return d.Err
}

// Result is the outcome of a successful run.
type Result struct {
	RunID        string
	UserID       string
	Category     core.Category
	Route        core.Route
	Request      *Request
	Answer       string
	Degradations []Degradation
}

// Degraded reports whether any routed input was skipped.
func (r *Result) Degraded() bool {
	return len(r.Degradations) > 0
}

// PartialInputError returns nil for a complete run. Otherwise it returns an
// error matching core.ErrPartialInputUnavailable and every skipped input's cause.
func (r *Result) PartialInputError() error {
	if !r.Degraded() {
		return nil
	}
	errs := make([]error, 0, len(r.Degradations)+1)
	errs = append(errs, core.ErrPartialInputUnavailable)
	for _, d := range r.Degradations {
		errs = append(errs, d)
	}
	return errors.Join(errs...)
}
