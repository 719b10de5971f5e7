// shopctl is a small shopping client for the storefront API. It keeps a
// durable local cart and submits it as a cash-on-delivery order at checkout.
//
// Usage:
//
//	shopctl [-server URL] [-cart FILE] add <product-id> [quantity] [custom requirements]
//	shopctl [-server URL] [-cart FILE] update <product-id> <quantity>
//	shopctl [-server URL] [-cart FILE] remove <product-id>
//	shopctl [-server URL] [-cart FILE] show
//	shopctl [-server URL] [-cart FILE] clear
//	shopctl [-server URL] [-cart FILE] checkout -name N -email E -phone P -address A
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stitchfield/storefront/internal/cart"
	"github.com/stitchfield/storefront/internal/order"
)

type client struct {
	baseURL string
	http    *http.Client
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	server := flag.String("server", "http://localhost:8080", "storefront server URL")
	cartPath := flag.String("cart", defaultCartPath(), "path to the local cart file")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	store, closeStore := openStore(*cartPath)
	defer closeStore()

	c := cart.New(store)
	api := &client{baseURL: strings.TrimRight(*server, "/"), http: &http.Client{Timeout: 10 * time.Second}}

	var err error
	switch args[0] {
	case "add":
		err = runAdd(c, api, args[1:])
	case "update":
		err = runUpdate(c, args[1:])
	case "remove":
		err = runRemove(c, args[1:])
	case "show":
		runShow(c)
	case "clear":
		c.Clear()
		fmt.Println("cart cleared")
	case "checkout":
		err = runCheckout(c, api, args[1:])
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func defaultCartPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "shopctl-cart.db"
	}
	return filepath.Join(home, ".shopctl", "cart.db")
}

// openStore opens the durable cart store, falling back to an in-memory cart
// when the file cannot be used. The cart never fails because of its store.
func openStore(path string) (cart.Store, func()) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.Warn().Err(err).Msg("cannot create cart directory, using in-memory cart")
		return cart.NewMemoryStore(), func() {}
	}

	store, err := cart.OpenBoltStore(path)
	if err != nil {
		log.Warn().Err(err).Msg("cannot open cart file, using in-memory cart")
		return cart.NewMemoryStore(), func() {}
	}
	return store, func() { _ = store.Close() }
}

func runAdd(c *cart.Cart, api *client, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: add <product-id> [quantity] [custom requirements]")
	}

	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	quantity := 1
	if len(args) > 1 {
		quantity, err = strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
	}

	custom := ""
	if len(args) > 2 {
		custom = strings.Join(args[2:], " ")
	}

	p, err := api.fetchProduct(productID)
	if err != nil {
		return err
	}
	if !p.InStock {
		return fmt.Errorf("%s is out of stock", p.Name)
	}

	c.AddItem(cart.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Category: p.Category,
		ImageURL: p.ImageURL,
	}, quantity, custom)

	fmt.Printf("added %s x%d\n", p.Name, quantity)
	return nil
}

func runUpdate(c *cart.Cart, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: update <product-id> <quantity>")
	}

	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}

	c.UpdateItem(productID, quantity, nil)
	fmt.Println("cart updated")
	return nil
}

func runRemove(c *cart.Cart, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: remove <product-id>")
	}

	productID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid product id %q", args[0])
	}

	c.RemoveItem(productID)
	fmt.Println("item removed")
	return nil
}

func runShow(c *cart.Cart) {
	items := c.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}

	for _, item := range items {
		fmt.Printf("%6d  %-30s x%-3d  %10d\n", item.Product.ID, item.Product.Name, item.Quantity, item.Product.Price*int64(item.Quantity))
		if item.CustomRequirements != "" {
			fmt.Printf("        note: %s\n", item.CustomRequirements)
		}
	}
	fmt.Printf("total: %d items, %d\n", c.TotalItems(), c.TotalPrice())
}

func runCheckout(c *cart.Cart, api *client, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	address := fs.String("address", "", "delivery address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items := c.Items()
	if len(items) == 0 {
		return fmt.Errorf("cart is empty")
	}

	req := order.CheckoutRequest{
		Customer: order.CheckoutCustomer{
			Name:    *name,
			Email:   *email,
			Phone:   *phone,
			Address: *address,
		},
	}
	for _, item := range items {
		req.Items = append(req.Items, order.CheckoutItem{
			ProductID:          item.Product.ID,
			Quantity:           item.Quantity,
			Price:              item.Product.Price,
			CustomRequirements: item.CustomRequirements,
		})
	}

	total := c.TotalPrice()

	resp, err := api.checkout(&req)
	if err != nil {
		return err
	}

	c.Clear()
	fmt.Printf("order #%d placed, pay %d in cash on delivery\n", resp.OrderID, total)
	return nil
}

type productResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
	InStock  bool   `json:"in_stock"`
}

func (c *client) fetchProduct(id int64) (*productResponse, error) {
	resp, err := c.http.Get(fmt.Sprintf("%s/api/products/%d", c.baseURL, id))
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("product %d not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("server returned %s", resp.Status)
	}

	var p productResponse
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode product: %w", err)
	}
	return &p, nil
}

type checkoutResponse struct {
	Success    bool   `json:"success"`
	OrderID    int64  `json:"orderId"`
	CustomerID int64  `json:"customerId"`
	Message    string `json:"message"`
}

func (c *client) checkout(req *order.CheckoutRequest) (*checkoutResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout request: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+"/api/orders", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	var out checkoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode checkout response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("checkout rejected: %s", out.Message)
	}
	return &out, nil
}
