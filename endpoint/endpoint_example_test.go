package endpoint_test

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-kit/fetch/endpoint"
)

// widgetByID is a typical endpoint variant: one struct per operation,
// carrying only the fields that operation needs.
type widgetByID struct {
	ID int
}

func (e widgetByID) Descriptor() (endpoint.Descriptor, error) {
	if e.ID <= 0 {
		return endpoint.Descriptor{}, fmt.Errorf("widget id %d out of range", e.ID)
	}
	return endpoint.Descriptor{
		Method: "GET",
		URL: &url.URL{
			Scheme: "https",
			Host:   "widgets.example.com",
			Path:   "/widgets/" + strconv.Itoa(e.ID),
		},
	}, nil
}

func ExampleEndpoint() {
	d, err := widgetByID{ID: 42}.Descriptor()
	if err != nil {
		panic(err)
	}
	fmt.Println(d.Method, d.URL)

	_, err = widgetByID{ID: -1}.Descriptor()
	fmt.Println(err)

	// Output:
	// GET https://widgets.example.com/widgets/42
	// widget id -1 out of range
}
