package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ruralplus/companion-api/schema"
)

// Properties lists the rural property parcels registered under a CPF.
func (c *Client) Properties(ctx context.Context, cpf string) ([]schema.PropertyFeature, error) {
	var features []schema.PropertyFeature
	path := fmt.Sprintf("/area_imovel/properties/%s", cpf)
	if err := c.do(ctx, http.MethodGet, path, nil, "", nil, &features); err != nil {
		return nil, err
	}
	return features, nil
}

// CreatePlusCode registers a Plus Code address for a property parcel.
func (c *Client) CreatePlusCode(ctx context.Context, propertyCode string, req schema.PlusCodeRequest) (*schema.PlusCode, error) {
	var saved schema.PlusCode
	path := fmt.Sprintf("/area_imovel/properties/%s/pluscode", propertyCode)
	if err := c.do(ctx, http.MethodPost, path, nil, "", req, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// UpdatePlusCode replaces a property's Plus Code record.
func (c *Client) UpdatePlusCode(ctx context.Context, propertyCode string, req schema.PlusCodeRequest) (*schema.PlusCode, error) {
	var saved schema.PlusCode
	path := fmt.Sprintf("/area_imovel/properties/%s/pluscode", propertyCode)
	if err := c.do(ctx, http.MethodPut, path, nil, "", req, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// RequestCertificate asks the backend to email the Plus Code certificate PDF
// to the property owner.
func (c *Client) RequestCertificate(ctx context.Context, req schema.CertificateRequest) error {
	return c.do(ctx, http.MethodPost, "/area_imovel/properties/pluscode/pdf", nil, "", req, nil)
}

// ListPlusCodes fetches the full Plus Code record set for the offline cache.
func (c *Client) ListPlusCodes(ctx context.Context) ([]schema.PlusCode, error) {
	var codes []schema.PlusCode
	if err := c.do(ctx, http.MethodGet, "/plus-code/get", nil, "", nil, &codes); err != nil {
		return nil, err
	}
	return codes, nil
}
