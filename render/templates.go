package render

// Embedded typst sources. DATA_JSON_PATH is substituted with the scratch
// data file before compilation.

const invoiceTemplate = `// Invoice document
#let data = json("DATA_JSON_PATH")

#set page(paper: "us-letter", margin: (top: 1in, bottom: 1in, left: 1in, right: 1in))
#set text(font: "Helvetica", size: 10pt)

#let fmt-int(digits) = {
  let len = digits.len()
  let out = ""
  for (i, digit) in digits.clusters().enumerate() {
    if i > 0 and calc.rem(len - i, 3) == 0 { out += "," }
    out += digit
  }
  out
}

#let fmt-currency(amount) = {
  let parts = str(calc.round(amount, digits: 2)).split(".")
  let whole = fmt-int(parts.at(0))
  let frac = if parts.len() > 1 { parts.at(1) } else { "00" }
  let frac2 = if frac.len() == 1 { frac + "0" } else { frac }
  data.currency_symbol + whole + "." + frac2
}

#grid(
  columns: (1fr, 1fr),
  align: (left, right),
  [
    #text(size: 18pt, weight: "bold")[#data.company.name]
    #v(0.3em)
    #data.company.address \
    #data.company.city, #data.company.state #data.company.zip \
    #data.company.email
    #if data.company.phone != "" [ \ #data.company.phone ]
  ],
  [
    #text(size: 24pt, weight: "bold")[INVOICE]
    #v(0.5em)
    #table(
      columns: (auto, auto), stroke: none, align: (right, left), inset: 2pt,
      [*Invoice \#:*], [#data.number],
      [*Date:*], [#data.date],
      [*Due Date:*], [#data.due_date],
    )
  ]
)

#v(1em)
#line(length: 100%, stroke: 0.5pt + gray)
#v(1em)

#text(weight: "bold", size: 11pt)[Bill To:]
#v(0.3em)
#text(weight: "bold")[#data.client.name]
#if data.client.contact != "" [ \ #data.client.contact ]
\ #data.client.address
\ #data.client.city, #data.client.state #data.client.zip
\ #data.client.email

#v(1.5em)

#table(
  columns: (auto, 1fr, auto, auto, auto),
  align: (center, left, right, right, right),
  stroke: (x, y) => if y == 0 { (bottom: 1pt + black) } else { (bottom: 0.5pt + gray) },
  inset: 8pt,
  fill: (x, y) => if y == 0 { luma(240) } else { none },
  [*\#*], [*Description*], [*Qty*], [*Rate*], [*Amount*],
  ..data.items.enumerate().map(((i, item)) => (
    str(i + 1),
    item.description,
    [#item.quantity #item.unit],
    [#fmt-currency(item.rate)],
    [#fmt-currency(item.amount)],
  )).flatten()
)

#v(1em)

#align(right)[
  #table(
    columns: (auto, auto), stroke: none, align: (right, right), inset: 6pt,
    [Subtotal:], [#fmt-currency(data.subtotal)],
    ..if data.tax_rate > 0 {
      ([Tax (#str(calc.round(data.tax_rate, digits: 2))%):], [#fmt-currency(data.tax_amount)])
    } else { () },
    [#text(weight: "bold")[Total:]], [#text(weight: "bold")[#fmt-currency(data.total)]],
  )
]

#v(2em)
#text(size: 9pt, fill: gray)[Payment terms: #data.payment_terms]
`

const reportTemplate = `// Invoice report document
#let data = json("DATA_JSON_PATH")

#set page(paper: "us-letter", margin: (top: 1in, bottom: 1in, left: 1in, right: 1in))
#set text(font: "Helvetica", size: 10pt)

#let fmt-int(digits) = {
  let len = digits.len()
  let out = ""
  for (i, digit) in digits.clusters().enumerate() {
    if i > 0 and calc.rem(len - i, 3) == 0 { out += "," }
    out += digit
  }
  out
}

#let fmt-currency(amount) = {
  let parts = str(calc.round(amount, digits: 2)).split(".")
  let whole = fmt-int(parts.at(0))
  let frac = if parts.len() > 1 { parts.at(1) } else { "00" }
  let frac2 = if frac.len() == 1 { frac + "0" } else { frac }
  data.currency_symbol + whole + "." + frac2
}

#text(size: 18pt, weight: "bold")[#data.company.name]
#v(0.3em)
#text(size: 14pt)[Invoice Report — #data.client.name]
#v(0.2em)
#text(size: 9pt, fill: gray)[
  Generated #data.generated_date
  #if data.filter_from != "" [ · from #data.filter_from ]
  #if data.filter_to != "" [ · to #data.filter_to ]
  #if data.filter_status != "" [ · status #data.filter_status ]
]

#v(1em)
#line(length: 100%, stroke: 0.5pt + gray)
#v(1em)

#table(
  columns: (auto, auto, 1fr, auto, auto, auto),
  align: (left, left, left, right, right, right),
  stroke: (x, y) => if y == 0 { (bottom: 1pt + black) } else { (bottom: 0.5pt + gray) },
  inset: 8pt,
  fill: (x, y) => if y == 0 { luma(240) } else { none },
  [*Number*], [*Date*], [*Status*], [*Total*], [*Paid*], [*Outstanding*],
  ..data.rows.map(row => (
    row.number,
    row.date,
    row.status,
    [#fmt-currency(row.total)],
    [#fmt-currency(row.paid)],
    [#fmt-currency(row.outstanding)],
  )).flatten()
)

#v(1em)

#align(right)[
  #table(
    columns: (auto, auto), stroke: none, align: (right, right), inset: 6pt,
    [Total:], [#fmt-currency(data.total)],
    [Paid:], [#fmt-currency(data.paid)],
    [#text(weight: "bold")[Outstanding:]], [#text(weight: "bold")[#fmt-currency(data.outstanding)]],
  )
]

#v(1.5em)
#text(size: 11pt, weight: "bold")[Payment detail]
#v(0.5em)
#for row in data.rows [
  #text(weight: "bold")[#row.number] — #row.date
  #if row.payments.len() == 0 [
    #h(1em) #text(fill: gray)[no payments recorded] \
  ] else [
    #for p in row.payments [
      #h(1em) #p.date: #fmt-currency(p.amount) \
    ]
  ]
]
`
