// Package leadscout is a Go client for grounded business-contact search.
//
// One free-text query plus a location is fanned out into concurrent prompts,
// each steering the generation provider toward a different slice of the
// market. The partial answers are parsed, merged and deduplicated by name.
//
//	client, _ := leadscout.New(ctx,
//	    leadscout.WithGemini(os.Getenv("GEMINI_API_KEY")),
//	    leadscout.WithRedisCache("localhost:6379", "", 6*time.Hour),
//	)
//	defer client.Close()
//
//	leads, _ := client.Search(ctx, leadscout.SearchParams{
//	    Query:       "padarias artesanais",
//	    Latitude:    -23.5505,
//	    Longitude:   -46.6333,
//	    TargetCount: 60,
//	}, leadscout.WithProgress(func(done, total int) {
//	    log.Printf("%d/%d", done, total)
//	}))
//
// A failing batch never fails the search: Search returns whatever the other
// batches produced, possibly nothing. Only an invalid request is an error.
package leadscout
