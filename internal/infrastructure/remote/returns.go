package remote

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"lapak-storefront/internal/domain"

	"github.com/pkg/errors"
)

// CreateReturn submits a pengembalian as multipart form data with the photo
// evidence attached as "photo".
func (c *Client) CreateReturn(ctx context.Context, in domain.CreateReturnInput) (*domain.ReturnRequest, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"orderId":   in.OrderID,
		"productId": in.ProductID,
		"quantity":  strconv.Itoa(in.Quantity),
		"reason":    in.Reason,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, errors.Wrap(err, "write return form")
		}
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="photo"; filename="`+escapeQuotes(in.PhotoName)+`"`)
	contentType := in.PhotoContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, errors.Wrap(err, "create photo part")
	}
	if _, err := part.Write(in.Photo); err != nil {
		return nil, errors.Wrap(err, "write photo part")
	}
	if err := mw.Close(); err != nil {
		return nil, errors.Wrap(err, "close return form")
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/pengembalian", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	r, err := do[domain.ReturnRequest](ctx, c, req)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListMyReturns(ctx context.Context) ([]domain.ReturnRequest, error) {
	return call[[]domain.ReturnRequest](ctx, c, http.MethodGet, "/pengembalian/me", nil)
}

func (c *Client) ListReturns(ctx context.Context) ([]domain.ReturnRequest, error) {
	return call[[]domain.ReturnRequest](ctx, c, http.MethodGet, "/pengembalian", nil)
}

func (c *Client) ApproveReturn(ctx context.Context, id, note string) (*domain.ReturnRequest, error) {
	return c.moderateReturn(ctx, id, "approve", note)
}

func (c *Client) RejectReturn(ctx context.Context, id, note string) (*domain.ReturnRequest, error) {
	return c.moderateReturn(ctx, id, "reject", note)
}

func (c *Client) moderateReturn(ctx context.Context, id, action, note string) (*domain.ReturnRequest, error) {
	var body interface{}
	if note != "" {
		body = map[string]string{"note": note}
	}
	r, err := call[domain.ReturnRequest](ctx, c, http.MethodPut, pathID("/pengembalian/%s/", id)+action, body)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) DamagedProducts(ctx context.Context) ([]domain.DamagedProduct, error) {
	return call[[]domain.DamagedProduct](ctx, c, http.MethodGet, "/pengembalian/damaged", nil)
}

func escapeQuotes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"', '\\', '\r', '\n':
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
