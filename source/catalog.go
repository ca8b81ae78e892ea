package source

// Defaults returns the built-in source catalog. Patterns and settle delays
// reflect each site's current markup; sites whose search pages render
// server-side are flagged Static and skip the browser entirely.
func Defaults() ([]Source, error) {
	sources := []Source{
		{
			ID:                  "pawnamerica",
			Name:                "Pawn America",
			BaseURL:             "https://www.pawnamerica.com",
			SearchURL:           "https://www.pawnamerica.com/Shop?query={query}",
			WaitFor:             ".ps-product__title",
			SettleMS:            2200,
			ProductPathPatterns: []string{`/Product/`},
		},
		{
			ID:                  "ebay",
			Name:                "eBay",
			BaseURL:             "https://www.ebay.com",
			SearchURL:           "https://www.ebay.com/sch/i.html?_nkw={query}",
			ProductPathPatterns: []string{`/itm/`},
			BuyItNowParams:      "&LH_BIN=1&LH_Auction=0",
		},
		{
			ID:                  "newegg",
			Name:                "Newegg",
			BaseURL:             "https://www.newegg.com",
			SearchURL:           "https://www.newegg.com/p/pl?d={query}",
			ProductPathPatterns: []string{`/p/`, `/Product/`},
			ExcludePathPatterns: []string{`/p/pl`},
		},
		{
			ID:                  "slickdeals",
			Name:                "Slickdeals",
			BaseURL:             "https://slickdeals.net",
			SearchURL:           "https://slickdeals.net/newsearch.php?src=SearchBarV2&q={query}&pp=25",
			WaitFor:             `.dealCard, .searchResult, a[href*="/f/"], a[href*="/deal/"]`,
			SettleMS:            2400,
			ProductPathPatterns: []string{`/f/`, `/deal/`},
		},
		{
			ID:                  "walmart",
			Name:                "Walmart",
			BaseURL:             "https://www.walmart.com",
			SearchURL:           "https://www.walmart.com/search?q={query}",
			WaitFor:             `[data-automation-id="product-tile"], [data-item-id]`,
			SettleMS:            2600,
			ProductPathPatterns: []string{`/ip/`},
		},
		{
			ID:                  "bestbuy",
			Name:                "Best Buy",
			BaseURL:             "https://www.bestbuy.com",
			SearchURL:           "https://www.bestbuy.com/site/searchpage.jsp?st={query}",
			WaitFor:             ".sku-item",
			SettleMS:            2600,
			ProductPathPatterns: []string{`/site/.+?/\d+\.p`},
		},
		{
			ID:                  "amazon",
			Name:                "Amazon",
			BaseURL:             "https://www.amazon.com",
			SearchURL:           "https://www.amazon.com/s?k={query}",
			ProductPathPatterns: []string{`/dp/`, `/gp/product/`},
		},
		{
			ID:                  "target",
			Name:                "Target",
			BaseURL:             "https://www.target.com",
			SearchURL:           "https://www.target.com/s?searchTerm={query}",
			WaitFor:             `a[href*="/p/"]`,
			SettleMS:            2600,
			ProductPathPatterns: []string{`/p/`},
		},
		{
			ID:                  "costco",
			Name:                "Costco",
			BaseURL:             "https://www.costco.com",
			SearchURL:           "https://www.costco.com/CatalogSearch?keyword={query}",
			ProductPathPatterns: []string{`/product/`},
		},
		{
			ID:                  "samsclub",
			Name:                "Sam's Club",
			BaseURL:             "https://www.samsclub.com",
			SearchURL:           "https://www.samsclub.com/s/{query}",
			ProductPathPatterns: []string{`/p/`},
		},
		{
			ID:                  "aliexpress",
			Name:                "AliExpress",
			BaseURL:             "https://www.aliexpress.us",
			SearchURL:           "https://www.aliexpress.us/w/wholesale-{query}.html",
			WaitFor:             `a[href*="/item/"]`,
			SettleMS:            3000,
			ProductPathPatterns: []string{`/item/`},
		},
		{
			ID:                  "temu",
			Name:                "Temu",
			BaseURL:             "https://www.temu.com",
			SearchURL:           "https://www.temu.com/search_result.html?search_key={query}",
			WaitFor:             `a[href*="goods.html"]`,
			SettleMS:            3000,
			ProductPathPatterns: []string{`/goods.html`},
		},
		{
			ID:                  "bhphoto",
			Name:                "B&H Photo",
			BaseURL:             "https://www.bhphotovideo.com",
			SearchURL:           "https://www.bhphotovideo.com/c/search?Ntt={query}",
			ProductPathPatterns: []string{`/c/product/`},
		},
		{
			ID:                  "microcenter",
			Name:                "Micro Center",
			BaseURL:             "https://www.microcenter.com",
			SearchURL:           "https://www.microcenter.com/search/search_results.aspx?Ntt={query}",
			ProductPathPatterns: []string{`/product/`},
			Static:              true,
		},
		{
			ID:                  "gamestop",
			Name:                "GameStop",
			BaseURL:             "https://www.gamestop.com",
			SearchURL:           "https://www.gamestop.com/search/?q={query}",
			WaitFor:             `a[href*="/products/"]`,
			SettleMS:            2600,
			ProductPathPatterns: []string{`/products/`},
		},
		{
			ID:                  "staples",
			Name:                "Staples",
			BaseURL:             "https://www.staples.com",
			SearchURL:           "https://www.staples.com/search?query={query}",
			ProductPathPatterns: []string{`/products/`},
		},
		{
			ID:                  "officedepot",
			Name:                "Office Depot",
			BaseURL:             "https://www.officedepot.com",
			SearchURL:           "https://www.officedepot.com/catalog/search.do?searchTerm={query}",
			ProductPathPatterns: []string{`/a/products/`},
			Static:              true,
		},
		{
			ID:                  "dell",
			Name:                "Dell",
			BaseURL:             "https://www.dell.com",
			SearchURL:           "https://www.dell.com/en-us/search/{query}",
			ProductPathPatterns: []string{`/en-us/shop/`},
		},
		{
			ID:                  "lenovo",
			Name:                "Lenovo",
			BaseURL:             "https://www.lenovo.com",
			SearchURL:           "https://www.lenovo.com/us/en/search?query={query}",
			ProductPathPatterns: []string{`/p/`},
		},
	}

	for i := range sources {
		if err := sources[i].Compile(); err != nil {
			return nil, err
		}
	}
	return sources, nil
}
