package yelp_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/effective-security/yelpmcp/tools/yelp"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func Test_EncodeQuery(t *testing.T) {
	t.Parallel()

	req := &yelp.SearchRequest{
		Location:              ptr("Austin, TX"),
		Latitude:              ptr(30.2672),
		OpenNow:               ptr(true),
		Limit:                 ptr(5),
		MatchesPartySizeParam: ptr(false),
	}
	q := yelp.EncodeQuery(req)
	assert.Len(t, q, 5)
	assert.Equal(t, "latitude=30.2672&limit=5&location=Austin%2C+TX&matches_party_size_param=false&open_now=true", q.Encode())

	// zero values are sent when present
	q = yelp.EncodeQuery(&yelp.SearchRequest{Location: ptr("NYC"), Offset: ptr(0), Radius: ptr(0)})
	assert.Equal(t, "location=NYC&offset=0&radius=0", q.Encode())

	q = yelp.EncodeQuery(&yelp.SearchRequest{Longitude: ptr(-122.4194), OpenAt: ptr(int64(1700000000))})
	assert.Equal(t, "longitude=-122.4194&open_at=1700000000", q.Encode())

	assert.Empty(t, yelp.EncodeQuery(nil))
	assert.Empty(t, yelp.EncodeQuery((*yelp.SearchRequest)(nil)))
	assert.Empty(t, yelp.EncodeQuery("string"))
}

func Test_EncodeQuery_SkipsPathParameter(t *testing.T) {
	t.Parallel()

	q := yelp.EncodeQuery(&yelp.BusinessDetailsRequest{BusinessIDOrAlias: "gary-danko-san-francisco"})
	assert.Empty(t, q)
	assert.Empty(t, q.Encode())

	q = yelp.EncodeQuery(&yelp.BusinessDetailsRequest{
		BusinessIDOrAlias: "gary-danko-san-francisco",
		Locale:            ptr("fr_FR"),
		DevicePlatform:    ptr("ios"),
	})
	assert.Equal(t, "device_platform=ios&locale=fr_FR", q.Encode())
}

func Test_Requests(t *testing.T) {
	t.Parallel()

	t.Run("details", func(t *testing.T) {
		r, err := (&yelp.BusinessDetailsRequest{BusinessIDOrAlias: "WavvLdfdP6g8aZTtbBQHTw"}).Request()
		require.NoError(t, err)
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, yelp.PathBusinessDetails, r.Route)
		assert.Equal(t, "/v3/businesses/WavvLdfdP6g8aZTtbBQHTw", r.Path)
		assert.Nil(t, r.Body)

		r, err = (&yelp.BusinessDetailsRequest{BusinessIDOrAlias: "a/../b c"}).Request()
		require.NoError(t, err)
		assert.Equal(t, "/v3/businesses/a%2F..%2Fb%20c", r.Path)
	})

	t.Run("phone", func(t *testing.T) {
		r, err := (&yelp.PhoneSearchRequest{Phone: "+14159083801"}).Request()
		require.NoError(t, err)
		assert.Equal(t, yelp.PathPhoneSearch, r.Path)
		assert.Equal(t, "phone=%2B14159083801", r.Query.Encode())
	})

	t.Run("match", func(t *testing.T) {
		req := &yelp.BusinessMatchRequest{
			Name:     ptr("Gary Danko"),
			Address1: ptr("800 N Point St"),
			City:     "San Francisco",
			State:    "CA",
			Country:  "US",
		}
		req.SetDefaults()
		r, err := req.Request()
		require.NoError(t, err)
		assert.Equal(t, yelp.PathBusinessMatch, r.Path)
		assert.Equal(t, "address1=800+N+Point+St&city=San+Francisco&country=US&limit=3&match_threshold=default&name=Gary+Danko&state=CA", r.Query.Encode())
		exp := url.Values{
			"name":            {"Gary Danko"},
			"address1":        {"800 N Point St"},
			"city":            {"San Francisco"},
			"state":           {"CA"},
			"country":         {"US"},
			"limit":           {"3"},
			"match_threshold": {"default"},
		}
		assert.Empty(t, cmp.Diff(exp, r.Query))

		// provided values are kept
		req = &yelp.BusinessMatchRequest{Limit: ptr(7), MatchThreshold: ptr("none")}
		req.SetDefaults()
		assert.Equal(t, 7, *req.Limit)
		assert.Equal(t, "none", *req.MatchThreshold)
	})

	t.Run("chat", func(t *testing.T) {
		r, err := (&yelp.ChatRequest{Query: "Find tacos"}).Request()
		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, yelp.PathChat, r.Path)
		assert.Empty(t, r.Query)
		assert.Equal(t, `{"query":"Find tacos"}`, string(r.Body))

		r, err = (&yelp.ChatRequest{Query: "more", ChatID: ptr("chat-1")}).Request()
		require.NoError(t, err)
		assert.Equal(t, `{"query":"more","chat_id":"chat-1"}`, string(r.Body))

		// one coordinate is not enough for user_context
		r, err = (&yelp.ChatRequest{Query: "q", Latitude: ptr(37.7749)}).Request()
		require.NoError(t, err)
		assert.Equal(t, `{"query":"q"}`, string(r.Body))

		r, err = (&yelp.ChatRequest{Query: "q", Latitude: ptr(37.7749), Longitude: ptr(-122.4194)}).Request()
		require.NoError(t, err)
		assert.Equal(t, `{"query":"q","user_context":{"latitude":37.7749,"longitude":-122.4194}}`, string(r.Body))
	})
}
