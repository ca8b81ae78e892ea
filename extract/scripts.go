package extract

// anchorWalk is the generic extraction heuristic shared by several scripts.
// It deliberately avoids site class names: for each link it climbs up to 7
// ancestors looking for a container whose text holds a dollar price, then
// takes the link text (or a nearby image's alt) as the name. Candidates are
// deduplicated by (href, name, priceText).
const anchorWalk = `
	const priceRegex = /\$\s*\d[\d,]*(?:\.\d{2})?/;
	const walkAnchors = (links, results, seen) => {
		for (const link of links) {
			const href = link.getAttribute('href');
			if (!href) continue;

			let container = link;
			let containerText = '';
			for (let i = 0; i < 7; i++) {
				if (!container || !container.parentElement) break;
				containerText = (container.innerText || '').trim();
				if (priceRegex.test(containerText)) break;
				container = container.parentElement;
			}
			if (!priceRegex.test(containerText)) continue;

			let name = (link.innerText || '').trim();
			if (!name) {
				const img = link.querySelector('img[alt]') || (container ? container.querySelector('img[alt]') : null);
				if (img && img.getAttribute('alt')) name = img.getAttribute('alt').trim();
			}
			let imageUrl = '';
			const imgTag = link.querySelector('img') || (container ? container.querySelector('img') : null);
			if (imgTag && imgTag.getAttribute('src')) imageUrl = imgTag.getAttribute('src');

			const priceMatch = containerText.match(priceRegex);
			const priceText = priceMatch ? priceMatch[0] : '';

			const key = href + '|' + name + '|' + priceText;
			if (seen.has(key)) continue;
			seen.add(key);

			results.push({ href, name, priceText, imageUrl });
		}
	};
`

const genericScript = `() => {` + anchorWalk + `
	const results = [];
	const seen = new Set();
	walkAnchors(Array.from(document.querySelectorAll('a[href]')), results, seen);
	return results;
}`

const neweggScript = `() => {
	const items = Array.from(document.querySelectorAll('.item-cell'));
	const results = [];
	const seen = new Set();

	for (const item of items) {
		const title = item.querySelector('a.item-title');
		const price = item.querySelector('.price-current');
		if (!title) continue;

		const href = title.getAttribute('href') || '';
		const name = (title.innerText || '').trim();
		const priceText = (price ? price.innerText : '').trim();
		const image = item.querySelector('img');
		const imageUrl = image ? (image.getAttribute('src') || '') : '';

		const key = href + '|' + name + '|' + priceText;
		if (seen.has(key)) continue;
		seen.add(key);

		results.push({ href, name, priceText, imageUrl });
	}

	return results;
}`

const walmartScript = `() => {` + anchorWalk + `
	const items = Array.from(
		document.querySelectorAll(
			'[data-automation-id="product-tile"], [data-item-id], [data-testid="item-stack"]'
		)
	);
	const results = [];
	const seen = new Set();

	for (const item of items) {
		const link = item.querySelector('a[href*="/ip/"]');
		const title = item.querySelector('[data-automation-id="product-title"], [data-testid="product-title"]') || link;
		const price = item.querySelector(
			'[data-automation-id="product-price"], [data-testid="product-price"], span[itemprop="price"]'
		);

		if (!link) continue;
		const href = link.getAttribute('href') || '';
		const name = (title ? title.innerText : link.innerText || '').trim();
		const priceText = (price ? price.innerText : '').trim();
		const image = item.querySelector('img');
		const imageUrl = image ? (image.getAttribute('src') || '') : '';

		const key = href + '|' + name + '|' + priceText;
		if (seen.has(key)) continue;
		seen.add(key);

		results.push({ href, name, priceText, imageUrl });
	}

	if (!results.length) {
		walkAnchors(Array.from(document.querySelectorAll('a[href*="/ip/"]')), results, seen);
	}
	return results;
}`

const bestBuyScript = `() => {
	const items = Array.from(document.querySelectorAll('.sku-item'));
	const results = [];
	const seen = new Set();

	for (const item of items) {
		const title = item.querySelector('.sku-title a');
		const price = item.querySelector('.priceView-hero-price span, .priceView-customer-price span');
		if (!title) continue;

		const href = title.getAttribute('href') || '';
		const name = (title.innerText || '').trim();
		const priceText = (price ? price.innerText : '').trim();
		const image = item.querySelector('img');
		const imageUrl = image ? (image.getAttribute('src') || '') : '';

		const key = href + '|' + name + '|' + priceText;
		if (seen.has(key)) continue;
		seen.add(key);

		results.push({ href, name, priceText, imageUrl });
	}

	return results;
}`

const slickdealsScript = `() => {` + anchorWalk + `
	const items = Array.from(
		document.querySelectorAll(
			'.dealCard, .resultRow, .dp-p, .searchResult, [data-threadid], [data-id]'
		)
	);
	const results = [];
	const seen = new Set();

	for (const item of items) {
		const title = item.querySelector(
			'.dealTitle, .dealTitle a, a.dealTitle, a[data-did], a[href*="/f/"], a[href*="/deal/"]'
		);
		const price = item.querySelector('.dealPrice, .price, .dealCard-price, [data-price]');
		const link = title && title.tagName.toLowerCase() === 'a' ? title : (title ? title.querySelector('a') : null);
		if (!link) continue;

		const href = link.getAttribute('href') || '';
		const name = (link.innerText || '').trim();
		const priceText = (price ? (price.innerText || price.getAttribute('data-price') || '') : '').trim();
		const image = item.querySelector('img');
		const imageUrl = image ? (image.getAttribute('src') || '') : '';

		const key = href + '|' + name + '|' + priceText;
		if (seen.has(key)) continue;
		seen.add(key);

		results.push({ href, name, priceText, imageUrl });
	}

	if (!results.length) {
		walkAnchors(Array.from(document.querySelectorAll('a[href*="/f/"], a[href*="/deal/"]')), results, seen);
	}
	return results;
}`

const pawnAmericaScript = `() => {
	const cards = Array.from(document.querySelectorAll('.ps-product'));
	const results = [];
	const seen = new Set();

	for (const card of cards) {
		const title = card.querySelector('.ps-product__title');
		const price = card.querySelector('.ps-product__price');
		const link = title || card.querySelector('.ps-product__thumbnail a[href]');

		if (!link) continue;
		const href = link.getAttribute('href') || '';
		const name = (title ? title.innerText : link.innerText || '').trim();
		const priceText = (price ? price.innerText : '').trim();
		const image = card.querySelector('img');
		const imageUrl = image ? (image.getAttribute('src') || '') : '';

		const key = href + '|' + name + '|' + priceText;
		if (seen.has(key)) continue;
		seen.add(key);

		results.push({ href, name, priceText, imageUrl });
	}

	return results;
}`
