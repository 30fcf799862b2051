package storefront

const productFields = `
  id
  title
  handle
  description
  descriptionHtml
  tags
  vendor
  productType
  createdAt
  updatedAt
  images(first: 10) {
    edges { node { id url altText } }
  }
  variants(first: 10) {
    edges {
      node {
        id
        title
        price { amount currencyCode }
        compareAtPrice { amount currencyCode }
        availableForSale
        selectedOptions { name value }
        image { id url altText }
      }
    }
  }
`

const cartFields = `
  id
  checkoutUrl
  lines(first: 100) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            price { amount currencyCode }
            product {
              id
              title
              handle
              images(first: 1) { edges { node { url altText } } }
            }
          }
        }
      }
    }
  }
  cost {
    totalAmount { amount currencyCode }
    subtotalAmount { amount currencyCode }
  }
`

const productsQuery = `query getProducts($first: Int!, $query: String) {
  products(first: $first, query: $query) {
    edges { node {` + productFields + `} }
  }
}`

const productQuery = `query getProduct($handle: String!) {
  product(handle: $handle) {` + productFields + `}
}`

const cartCreateMutation = `mutation cartCreate($input: CartInput!) {
  cartCreate(input: $input) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`

const cartLinesAddMutation = `mutation cartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`

const cartLinesUpdateMutation = `mutation cartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`

const cartLinesRemoveMutation = `mutation cartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {` + cartFields + `}
    userErrors { field message }
  }
}`
