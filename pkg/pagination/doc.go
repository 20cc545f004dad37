// Package pagination provides live paged collections for the Chute API.
//
// A Collection is the result of a list query. It holds the items fetched so far
// together with the Query that produced them and can extend itself in place:
//
//	assets, err := service.Query(ctx, pagination.Params{"album": "abcqsrlx", "perPage": "3"})
//	if err != nil {
//		return err
//	}
//	if err := assets.Wait(ctx); err != nil {
//		return err
//	}
//	for assets.HasMore() {
//		page, err := assets.FetchNext(ctx)
//		...
//	}
//
// Two pagination strategies are supported and selected from the sort order on
// every fetch:
//   - Cursor (sort unset, "id" or "time"): the boundary item's identifier is sent
//     as max_<field> (next) or since_<field> (previous) and page is omitted.
//   - Page number (any other sort): page is sent; fetching before page 1 fails
//     with a RangeError before any request is made.
//
// A collection admits one fetch at a time. Overlapping calls return
// ErrFetchInFlight.
package pagination
