package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"storefront_client/internal/domain"
)

// TokenSource supplies the current bearer token; an empty string means the
// request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
}

type CatalogAPI interface {
	ListProducts(ctx context.Context, query ProductQuery) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int) error
}

type CartAPI interface {
	GetCart(ctx context.Context, userID int) (*domain.Cart, error)
	AddToCart(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error)
	UpdateCartItem(ctx context.Context, itemID, quantity int) (*domain.CartItem, error)
	RemoveFromCart(ctx context.Context, itemID int) error
	ClearCart(ctx context.Context, cartID int) error
}

type CheckoutAPI interface {
	CheckoutCart(ctx context.Context, cartID int) (*domain.Checkout, error)
	GetCheckoutHistory(ctx context.Context, userID int) ([]domain.Checkout, error)
}

// ProductQuery narrows a product listing. Zero values mean no filter.
type ProductQuery struct {
	SellerID int
	Search   string
}

// LoginResult is the normalized login payload. The remote API returns
// {access, refresh} in one deployment and {token, refresh_token} in another;
// both decode into this one shape.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.User
}

// StorefrontClient issues stateless HTTP calls to the storefront REST API,
// attaching a bearer token when the session holds one. It never retries and
// never interprets server state beyond mapping HTTP status to the error
// taxonomy.
type StorefrontClient struct {
	baseURL string
	client  *http.Client
	tokens  TokenSource
	log     *logrus.Logger
}

var (
	_ AuthAPI     = (*StorefrontClient)(nil)
	_ CatalogAPI  = (*StorefrontClient)(nil)
	_ CartAPI     = (*StorefrontClient)(nil)
	_ CheckoutAPI = (*StorefrontClient)(nil)
)

func NewStorefrontClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *logrus.Logger) *StorefrontClient {
	return &StorefrontClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
		log:    logger,
	}
}

func (c *StorefrontClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}

	var raw struct {
		Access       string `json:"access"`
		Refresh      string `json:"refresh"`
		Token        string `json:"token"`
		RefreshToken string `json:"refresh_token"`
		domain.User
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/login/", "user", body, &raw); err != nil {
		return nil, err
	}

	result := &LoginResult{
		AccessToken:  raw.Access,
		RefreshToken: raw.Refresh,
		User:         raw.User,
	}
	if result.AccessToken == "" {
		result.AccessToken = raw.Token
		result.RefreshToken = raw.RefreshToken
	}
	if result.AccessToken == "" {
		c.log.Errorf("StorefrontClient: login response for %s carried no access token in any known field", email)
		return nil, &domain.DecodeError{What: "login response"}
	}
	c.log.Infof("StorefrontClient: login succeeded for %s (role %s)", email, result.User.Role)
	return result, nil
}

func (c *StorefrontClient) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/api/users/register/", "user", reg, &user); err != nil {
		return nil, err
	}
	c.log.Infof("StorefrontClient: registered user %s (role %s)", user.Username, user.Role)
	return &user, nil
}

func (c *StorefrontClient) ListProducts(ctx context.Context, query ProductQuery) ([]domain.Product, error) {
	path := "/api/products/"
	params := url.Values{}
	if query.SellerID > 0 {
		params.Set("seller", strconv.Itoa(query.SellerID))
	}
	if query.Search != "" {
		params.Set("search", query.Search)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, "product", nil, &raw); err != nil {
		return nil, err
	}
	return decodeProductList(raw)
}

func (c *StorefrontClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d/", id), "product", nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *StorefrontClient) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPost, "/api/products/", "product", in, &product); err != nil {
		return nil, err
	}
	c.log.Infof("StorefrontClient: created product %d (%s)", product.ID, product.ProductName)
	return &product, nil
}

func (c *StorefrontClient) UpdateProduct(ctx context.Context, id int, in domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/products/%d/", id), "product", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *StorefrontClient) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d/", id), "product", nil, nil)
}

func (c *StorefrontClient) GetCart(ctx context.Context, userID int) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/carts/%d/", userID), "cart", nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (c *StorefrontClient) AddToCart(ctx context.Context, userID, productID, quantity int) (*domain.CartItem, error) {
	body := map[string]int{
		"user_id":  userID,
		"product":  productID,
		"quantity": quantity,
	}
	var item domain.CartItem
	if err := c.do(ctx, http.MethodPost, "/api/cart-items/", "cart item", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *StorefrontClient) UpdateCartItem(ctx context.Context, itemID, quantity int) (*domain.CartItem, error) {
	body := map[string]int{"quantity": quantity}
	var item domain.CartItem
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/api/cart-items/%d/", itemID), "cart item", body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *StorefrontClient) RemoveFromCart(ctx context.Context, itemID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/cart-items/%d/", itemID), "cart item", nil, nil)
}

func (c *StorefrontClient) ClearCart(ctx context.Context, cartID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/carts/%d/clear/", cartID), "cart", nil, nil)
}

func (c *StorefrontClient) CheckoutCart(ctx context.Context, cartID int) (*domain.Checkout, error) {
	body := map[string]int{"cart": cartID}
	var checkout domain.Checkout
	if err := c.do(ctx, http.MethodPost, "/api/checkouts/", "checkout", body, &checkout); err != nil {
		return nil, err
	}
	c.log.Infof("StorefrontClient: checkout %d created for cart %d (total %s)",
		checkout.ID, cartID, checkout.TotalAmount)
	return &checkout, nil
}

func (c *StorefrontClient) GetCheckoutHistory(ctx context.Context, userID int) ([]domain.Checkout, error) {
	var checkouts []domain.Checkout
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/checkouts/user/%d/", userID), "checkout", nil, &checkouts); err != nil {
		return nil, err
	}
	return checkouts, nil
}

// do runs one request against the remote API. resource names what the path
// addresses so a 404 can surface as a NotFoundError for that resource. A nil
// out discards the response body (204-style endpoints).
func (c *StorefrontClient) do(ctx context.Context, method, path, resource string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return &domain.TransportError{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &domain.TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debugf("StorefrontClient: %s %s", method, path)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("StorefrontClient: %s %s failed: %v", method, path, err)
		return &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(resp, method, path, resource)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Errorf("StorefrontClient: failed to decode %s %s response: %v", method, path, err)
		return &domain.DecodeError{What: resource + " response", Err: err}
	}
	return nil
}

// statusError maps an HTTP error status onto the error taxonomy, carrying
// the server-provided message through unchanged.
func (c *StorefrontClient) statusError(resp *http.Response, method, path, resource string) error {
	bodyBytes, _ := io.ReadAll(resp.Body)
	message, fields := serverMessage(bodyBytes)

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		c.log.Warnf("StorefrontClient: %s %s rejected with status %d: %s", method, path, resp.StatusCode, message)
		if message == "" {
			message = "request rejected by the server"
		}
		return &domain.AuthError{Reason: message}
	case http.StatusNotFound:
		c.log.Warnf("StorefrontClient: %s %s: %s not found (status 404)", method, path, resource)
		return &domain.NotFoundError{Resource: resource}
	case http.StatusBadRequest:
		if len(fields) > 0 {
			c.log.Warnf("StorefrontClient: %s %s rejected with field errors: %v", method, path, fields)
			return &domain.ValidationError{Fields: fields}
		}
		fallthrough
	default:
		c.log.Errorf("StorefrontClient: %s %s failed with status %d: %s", method, path, resp.StatusCode, message)
		return &domain.TransportError{StatusCode: resp.StatusCode, Message: message}
	}
}

// serverMessage pulls the error text out of a failure body. The remote API
// answers with {"error": ...} or {"detail": ...} on most failures, and with a
// field -> [messages] mapping on registration and product validation.
func serverMessage(body []byte) (string, map[string][]string) {
	if len(body) == 0 {
		return "", nil
	}

	var envelope struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		switch {
		case envelope.Error != "":
			return envelope.Error, nil
		case envelope.Detail != "":
			return envelope.Detail, nil
		case envelope.Message != "":
			return envelope.Message, nil
		}
	}

	var fields map[string][]string
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		return "", fields
	}
	return string(body), nil
}

// decodeProductList normalizes the two product listing shapes the remote API
// is known to emit: a bare array, or a paginated {results: [...]} object.
// Anything else is a DecodeError rather than ambiguity passed upward.
func decodeProductList(raw json.RawMessage) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var paginated struct {
		Results *[]domain.Product `json:"results"`
	}
	if err := json.Unmarshal(raw, &paginated); err == nil && paginated.Results != nil {
		return *paginated.Results, nil
	}
	return nil, &domain.DecodeError{What: "product list"}
}
