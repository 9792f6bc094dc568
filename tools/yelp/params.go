package yelp

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/sjson"
)

// Endpoints
const (
	PathChat            = "/ai/chat/v2"
	PathSearch          = "/v3/businesses/search"
	PathPhoneSearch     = "/v3/businesses/search/phone"
	PathBusinessMatch   = "/v3/businesses/matches"
	PathBusinessDetails = "/v3/businesses/{business_id_or_alias}"
)

// Business match defaults, always sent when not provided
const (
	DefaultMatchLimit     = 3
	DefaultMatchThreshold = "default"
)

// ChatRequest is the input of the Yelp AI chat tool.
type ChatRequest struct {
	Query     string   `json:"query" validate:"required" jsonschema:"minLength=1" jsonschema_description:"Natural language text for querying Yelp-specific information. Accepts any prompt related to Yelp businesses, such as 'Can you find a Thai restaurant near me?'. Plain text, no special formatting needed."`
	ChatID    *string  `json:"chat_id,omitempty" jsonschema_description:"Identifies the current conversation. Omit on the first request, the API responds with a new chat_id. Use the returned chat_id on subsequent requests to continue the same conversation, an invalid chat_id fails the request."`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitnil,gte=-90,lte=90" jsonschema:"minimum=-90,maximum=90" jsonschema_description:"User's approximate latitude, sent only together with longitude. Helps to return more location-specific results."`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitnil,gte=-180,lte=180" jsonschema:"minimum=-180,maximum=180" jsonschema_description:"User's approximate longitude, sent only together with latitude. Helps to return more location-specific results."`
}

// Request returns the POST request with the JSON body.
// user_context is set only when both coordinates are present.
func (r *ChatRequest) Request() (*Request, error) {
	body, err := chatBody(r)
	if err != nil {
		return nil, err
	}
	return &Request{
		Method: http.MethodPost,
		Route:  PathChat,
		Path:   PathChat,
		Body:   body,
	}, nil
}

func chatBody(r *ChatRequest) ([]byte, error) {
	payload := struct {
		Query  string  `json:"query"`
		ChatID *string `json:"chat_id,omitempty"`
	}{
		Query:  r.Query,
		ChatID: r.ChatID,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal chat request")
	}
	if r.Latitude != nil && r.Longitude != nil {
		body, err = sjson.SetBytes(body, "user_context.latitude", *r.Latitude)
		if err == nil {
			body, err = sjson.SetBytes(body, "user_context.longitude", *r.Longitude)
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to set user context")
		}
	}
	return body, nil
}

// SearchRequest is the input of the business search tool.
type SearchRequest struct {
	Location              *string  `json:"location,omitempty" validate:"omitnil,max=250" jsonschema:"maxLength=250" jsonschema_description:"Geographic area to search, e.g. 'New York City' or '350 5th Ave, New York, NY'. Required if latitude and longitude are not provided."`
	Latitude              *float64 `json:"latitude,omitempty" validate:"omitnil,gte=-90,lte=90" jsonschema:"minimum=-90,maximum=90" jsonschema_description:"Latitude for search. Required if location is not provided, must be paired with longitude."`
	Longitude             *float64 `json:"longitude,omitempty" validate:"omitnil,gte=-180,lte=180" jsonschema:"minimum=-180,maximum=180" jsonschema_description:"Longitude for search. Required if location is not provided, must be paired with latitude."`
	Term                  *string  `json:"term,omitempty" jsonschema_description:"Search term, e.g. 'food', 'restaurants' or a business name like 'Starbucks'. If omitted, searches popular categories."`
	Radius                *int     `json:"radius,omitempty" validate:"omitnil,gte=0,lte=40000" jsonschema:"minimum=0,maximum=40000" jsonschema_description:"Search radius in meters, about 25 miles max. Actual radius may vary based on business density."`
	Categories            *string  `json:"categories,omitempty" jsonschema_description:"Comma-separated category aliases, e.g. 'bars,french'."`
	Locale                *string  `json:"locale,omitempty" jsonschema_description:"Locale in {language}_{country} format, e.g. 'en_US'."`
	Price                 *string  `json:"price,omitempty" jsonschema_description:"Comma-separated price levels from 1 to 4, e.g. '1,2' for $ or $$."`
	OpenNow               *bool    `json:"open_now,omitempty" jsonschema_description:"If true, returns only businesses currently open. Cannot be used with open_at."`
	OpenAt                *int64   `json:"open_at,omitempty" jsonschema_description:"Unix timestamp for businesses open at that time. Cannot be used with open_now."`
	Attributes            *string  `json:"attributes,omitempty" jsonschema_description:"Comma-separated special attributes, e.g. 'hot_and_new,outdoor_seating'."`
	SortBy                *string  `json:"sort_by,omitempty" validate:"omitnil,oneof=best_match rating review_count distance" jsonschema:"enum=best_match,enum=rating,enum=review_count,enum=distance" jsonschema_description:"Sort method, the default is best_match."`
	DevicePlatform        *string  `json:"device_platform,omitempty" validate:"omitnil,oneof=ios android mobile-generic" jsonschema:"enum=ios,enum=android,enum=mobile-generic,description=Platform for mobile links."`
	ReservationDate       *string  `json:"reservation_date,omitempty" validate:"omitnil,datetime=2006-01-02" jsonschema:"description=Reservation date in YYYY-MM-DD format."`
	ReservationTime       *string  `json:"reservation_time,omitempty" validate:"omitnil,datetime=15:04" jsonschema_description:"Reservation time in HH:MM format, 24-hour."`
	ReservationCovers     *int     `json:"reservation_covers,omitempty" validate:"omitnil,gte=1,lte=10" jsonschema:"minimum=1,maximum=10,description=Number of people for reservation."`
	MatchesPartySizeParam *bool    `json:"matches_party_size_param,omitempty" jsonschema_description:"Filter businesses that can't accommodate the specified party size."`
	Limit                 *int     `json:"limit,omitempty" validate:"omitnil,gte=0,lte=50" jsonschema:"minimum=0,maximum=50" jsonschema_description:"Number of results. The default is 20."`
	Offset                *int     `json:"offset,omitempty" validate:"omitnil,gte=0,lte=1000" jsonschema:"minimum=0,maximum=1000,description=Result offset for pagination."`
}

// Check validates the combinations of fields
func (r *SearchRequest) Check() error {
	if (r.Location == nil || *r.Location == "") && (r.Latitude == nil || r.Longitude == nil) {
		return invalidf("either location or both latitude and longitude must be provided")
	}
	if r.OpenNow != nil && r.OpenAt != nil {
		return invalidf("open_now and open_at cannot be used together")
	}
	return nil
}

func (r *SearchRequest) Request() (*Request, error) {
	return &Request{
		Method: http.MethodGet,
		Route:  PathSearch,
		Path:   PathSearch,
		Query:  EncodeQuery(r),
	}, nil
}

// PhoneSearchRequest is the input of the phone search tool.
type PhoneSearchRequest struct {
	Phone  string  `json:"phone" validate:"required,min=1,max=32" jsonschema:"minLength=1,maxLength=32" jsonschema_description:"Phone number of the business with country code, e.g. +14159083801."`
	Locale *string `json:"locale,omitempty" jsonschema_description:"Locale code in {language}_{country} format, e.g. 'en_US'."`
}

func (r *PhoneSearchRequest) Request() (*Request, error) {
	return &Request{
		Method: http.MethodGet,
		Route:  PathPhoneSearch,
		Path:   PathPhoneSearch,
		Query:  EncodeQuery(r),
	}, nil
}

// BusinessMatchRequest is the input of the business match tool.
type BusinessMatchRequest struct {
	Name           *string  `json:"name" validate:"required,max=64" jsonschema:"maxLength=64" jsonschema_description:"Exact business name. Allowed chars: letters, digits, spaces and !#$%&+,./:?@'"`
	Address1       *string  `json:"address1" validate:"required,max=64" jsonschema:"maxLength=64" jsonschema_description:"First address line. Allowed chars: letters, digits, spaces and '/#&,.:"`
	Address2       *string  `json:"address2,omitempty" validate:"omitnil,max=64" jsonschema:"maxLength=64,description=Second address line."`
	Address3       *string  `json:"address3,omitempty" validate:"omitnil,max=64" jsonschema:"maxLength=64,description=Third address line."`
	City           string   `json:"city" validate:"required,min=1,max=64" jsonschema:"minLength=1,maxLength=64" jsonschema_description:"City name. Allowed chars: letters, digits, spaces and '.()"`
	State          string   `json:"state" validate:"required,min=1,max=3" jsonschema:"minLength=1,maxLength=3,description=ISO 3166-2 state code."`
	Country        string   `json:"country" validate:"required,len=2" jsonschema:"minLength=2,maxLength=2,description=ISO 3166-1 alpha-2 country code."`
	PostalCode     *string  `json:"postal_code,omitempty" validate:"omitnil,max=12" jsonschema:"maxLength=12,description=Postal or ZIP code."`
	Latitude       *float64 `json:"latitude,omitempty" validate:"omitnil,gte=-90,lte=90" jsonschema:"minimum=-90,maximum=90,description=Latitude of the business."`
	Longitude      *float64 `json:"longitude,omitempty" validate:"omitnil,gte=-180,lte=180" jsonschema:"minimum=-180,maximum=180,description=Longitude of the business."`
	Phone          *string  `json:"phone,omitempty" validate:"omitnil,min=1,max=32" jsonschema:"minLength=1,maxLength=32" jsonschema_description:"Phone number, local or international format."`
	YelpBusinessID *string  `json:"yelp_business_id,omitempty" validate:"omitnil,len=22" jsonschema:"minLength=22,maxLength=22,description=22-character Yelp business ID."`
	Limit          *int     `json:"limit,omitempty" validate:"omitnil,gte=1,lte=10" jsonschema:"minimum=1,maximum=10,default=3,description=Number of results."`
	MatchThreshold *string  `json:"match_threshold,omitempty" validate:"omitnil,oneof=none default" jsonschema:"enum=none,enum=default,default=default,description=Match quality threshold."`
}

// SetDefaults sets limit and match_threshold when not provided
func (r *BusinessMatchRequest) SetDefaults() {
	if r.Limit == nil {
		limit := DefaultMatchLimit
		r.Limit = &limit
	}
	if r.MatchThreshold == nil {
		threshold := DefaultMatchThreshold
		r.MatchThreshold = &threshold
	}
}

func (r *BusinessMatchRequest) Request() (*Request, error) {
	return &Request{
		Method: http.MethodGet,
		Route:  PathBusinessMatch,
		Path:   PathBusinessMatch,
		Query:  EncodeQuery(r),
	}, nil
}

// BusinessDetailsRequest is the input of the business details tool.
type BusinessDetailsRequest struct {
	BusinessIDOrAlias string  `json:"business_id_or_alias" url:"-" validate:"required" jsonschema:"minLength=1,description=22-character Yelp Business ID or Business Alias."`
	Locale            *string `json:"locale,omitempty" jsonschema_description:"Locale code in {language}_{country} format."`
	DevicePlatform    *string `json:"device_platform,omitempty" validate:"omitnil,oneof=ios android mobile-generic" jsonschema:"enum=ios,enum=android,enum=mobile-generic,description=Platform for mobile links."`
}

// Request returns the GET request,
// the business ID or alias is escaped as a single path segment.
func (r *BusinessDetailsRequest) Request() (*Request, error) {
	return &Request{
		Method: http.MethodGet,
		Route:  PathBusinessDetails,
		Path:   "/v3/businesses/" + url.PathEscape(r.BusinessIDOrAlias),
		Query:  EncodeQuery(r),
	}, nil
}
