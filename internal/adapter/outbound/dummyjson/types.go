package dummyjson

// Wire types for the demo catalog backend. The backend speaks "products";
// relabelling them as courses happens in the service layer, not here.

// Product is one remote catalog record.
type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"`
	Rating      float64  `json:"rating"`
	Stock       int      `json:"stock"`
	Brand       string   `json:"brand"`
	Thumbnail   string   `json:"thumbnail"`
	Images      []string `json:"images"`
	Reviews     []Review `json:"reviews"`
}

// Review is a product review as returned by the detail endpoint.
type Review struct {
	Rating        float64 `json:"rating"`
	Comment       string  `json:"comment"`
	Date          string  `json:"date"`
	ReviewerName  string  `json:"reviewerName"`
	ReviewerEmail string  `json:"reviewerEmail"`
}

// ProductsResponse is the paged envelope of the list and search endpoints.
type ProductsResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// LoginRequest is the credential body posted to /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the successful login body: user fields plus tokens.
type LoginResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
	// AccessToken is the bearer token. Older deployments of the demo
	// backend returned it under "token"; Token covers those.
	AccessToken string `json:"accessToken"`
	Token       string `json:"token"`
}

// BearerToken returns whichever token field the backend populated.
func (r *LoginResponse) BearerToken() string {
	if r.AccessToken != "" {
		return r.AccessToken
	}
	return r.Token
}
