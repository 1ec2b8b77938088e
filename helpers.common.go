package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidAdvertID  = fmt.Errorf("advert id must be an integer between %d and %d", MinAdvertID, MaxAdvertID)
	ErrMissingMaxPrice  = errors.New("maxPrice query parameter is required")
	ErrInvalidMaxPrice  = errors.New("maxPrice must be a non-negative number")
	ErrInvalidEmptyBody = errors.New("invalid empty request body")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	RequestIDPrefix         string     = "r"
	RequestIDContextKey     ContextKey = "request.id"
	RequestNumberContextKey ContextKey = "request.number"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// invalidFieldError reports a field which failed a constraint other than presence.
type invalidFieldError struct {
	field string
	tag   string
	param string
}

func (e invalidFieldError) Error() string {
	switch e.tag {
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.field, e.param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", e.field, e.param)
	default:
		return e.field + " is invalid"
	}
}

var validate = newValidator()

// newValidator provides a struct validator reporting fields by their json name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(RequestNumberContextKey); val != nil {
		return val.(uint64)
	}
	return 0
}

// DecodeAdvertRequestBody is a helper function to read the content of an advert creation or update request.
func DecodeAdvertRequestBody(r *http.Request, advert *Advert) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrInvalidEmptyBody
	}
	return json.NewDecoder(r.Body).Decode(advert)
}

// DecodeAdvertsBatchRequestBody is a helper function to read the content of a batch creation request.
func DecodeAdvertsBatchRequestBody(r *http.Request, adverts *[]Advert) error {
	if r.Body == nil || r.Body == http.NoBody {
		return ErrInvalidEmptyBody
	}
	return json.NewDecoder(r.Body).Decode(adverts)
}

// ValidateAdvertRequestBody is a helper function to check if the content of an advert is valid.
func ValidateAdvertRequestBody(advert *Advert) error {
	err := validate.Struct(advert)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return missingFieldError(fe.Field())
	}
	return invalidFieldError{field: fe.Field(), tag: fe.Tag(), param: fe.Param()}
}

// ValidateAdvertsBatchRequestBody checks every advert of a batch and names the
// first invalid one. An empty batch is valid.
func ValidateAdvertsBatchRequestBody(adverts []Advert) error {
	for i := range adverts {
		if err := ValidateAdvertRequestBody(&adverts[i]); err != nil {
			return fmt.Errorf("advert at index %d: %w", i, err)
		}
	}
	return nil
}

// ParseAdvertID converts a path parameter into an advert id within the allowed range.
func ParseAdvertID(value string) (int, error) {
	id, err := strconv.Atoi(value)
	if err != nil || id < MinAdvertID || id > MaxAdvertID {
		return 0, ErrInvalidAdvertID
	}
	return id, nil
}

// ParseMaxPrice converts the maxPrice query parameter into a non-negative price.
func ParseMaxPrice(value string) (float64, error) {
	if value == "" {
		return 0, ErrMissingMaxPrice
	}
	price, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(price) || price < 0 {
		return 0, ErrInvalidMaxPrice
	}
	return price, nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		ip = strings.TrimSpace(ip)
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
