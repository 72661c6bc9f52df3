package survey

import "testing"

func TestPrepPaginationInfos(t *testing.T) {
	testCases := []struct {
		name        string
		totalCount  int64
		page        int64
		limit       int64
		wantPage    int64
		wantPages   int64
		wantPerPage int64
	}{
		{name: "exact multiple", totalCount: 20, page: 1, limit: 10, wantPage: 1, wantPages: 2, wantPerPage: 10},
		{name: "partial last page", totalCount: 21, page: 3, limit: 10, wantPage: 3, wantPages: 3, wantPerPage: 10},
		{name: "page beyond range clamps", totalCount: 15, page: 9, limit: 10, wantPage: 2, wantPages: 2, wantPerPage: 10},
		{name: "zero page defaults to first", totalCount: 15, page: 0, limit: 10, wantPage: 1, wantPages: 2, wantPerPage: 10},
		{name: "invalid limit defaults", totalCount: 5, page: 1, limit: 0, wantPage: 1, wantPages: 1, wantPerPage: 10},
		{name: "empty collection", totalCount: 0, page: 1, limit: 10, wantPage: 1, wantPages: 0, wantPerPage: 10},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := prepPaginationInfos(tc.totalCount, tc.page, tc.limit)
			if got.CurrentPage != tc.wantPage {
				t.Errorf("unexpected current page: %d, want %d", got.CurrentPage, tc.wantPage)
			}
			if got.TotalPages != tc.wantPages {
				t.Errorf("unexpected total pages: %d, want %d", got.TotalPages, tc.wantPages)
			}
			if got.PageSize != tc.wantPerPage {
				t.Errorf("unexpected page size: %d, want %d", got.PageSize, tc.wantPerPage)
			}
			if got.TotalCount != tc.totalCount {
				t.Errorf("unexpected total count: %d, want %d", got.TotalCount, tc.totalCount)
			}
		})
	}
}
