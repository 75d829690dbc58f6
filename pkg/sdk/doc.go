// Package reelmatch embeds the reelmatch catalog engine in a Go program
// without running the HTTP service.
//
// A Client loads the item and image tables once (or on every call with
// WithReloadOnRequest) and answers content-similarity recommendations,
// fuzzy searches and featured selections against the loaded snapshot.
//
//	client, err := reelmatch.New(ctx,
//	    reelmatch.WithItemsCSV("data/movies.csv"),
//	    reelmatch.WithImagesCSV("data/movie_images.csv"),
//	)
//	if err != nil {
//	    return err
//	}
//	hits, _ := client.Recommend(ctx, "dark knight", 5)
//	found, _ := client.Search(ctx, "nolan", 0)
//
// Errors wrap ErrItemNotFound, ErrInvalidRequest or ErrCatalogUnavailable;
// check them with errors.Is.
package reelmatch
