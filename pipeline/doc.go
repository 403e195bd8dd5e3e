// Package pipeline routes a user query through classification, optional
// context lookup and document retrieval, answer generation and context commit.
//
// The Orchestrator decides per query which auxiliary inputs to gather from
// the category returned by the classifier (see core.RouteFor). Classification
// and generation failures abort the run. Context and document failures degrade
// it: generation proceeds with whatever inputs succeeded and the result records
// what was skipped. The answer is appended to the user's context only after
// generation succeeds.
//
// Basic usage:
//
//	orch, err := pipeline.NewOrchestrator(classifier, store, gateway, generator)
//	if err != nil {
//	    return err
//	}
//	defer orch.Release()
//
//	result, err := orch.Run(ctx, "u1", "What about 2023?")
//	if err != nil {
//	    return err
//	}
//	if result.Degraded() {
//	    log.Println(result.PartialInputError())
//	}
package pipeline
