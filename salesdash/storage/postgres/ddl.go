package postgres

const ddlBase = `
CREATE TABLE IF NOT EXISTS meta (
  key   TEXT PRIMARY KEY,
  value TEXT
);

CREATE TABLE IF NOT EXISTS sales (
  id                  BIGSERIAL PRIMARY KEY,
  transaction_id      TEXT    NOT NULL DEFAULT '',
  date_ms             BIGINT,
  customer_id         TEXT    NOT NULL DEFAULT '',
  customer_name       TEXT    NOT NULL DEFAULT '',
  customer_name_lc    TEXT    NOT NULL DEFAULT '',
  phone_number        TEXT    NOT NULL DEFAULT '',
  phone_lc            TEXT    NOT NULL DEFAULT '',
  gender              TEXT    NOT NULL DEFAULT '',
  age                 INTEGER,
  customer_region     TEXT    NOT NULL DEFAULT '',
  customer_type       TEXT    NOT NULL DEFAULT '',
  product_id          TEXT    NOT NULL DEFAULT '',
  product_name        TEXT    NOT NULL DEFAULT '',
  brand               TEXT    NOT NULL DEFAULT '',
  product_category    TEXT    NOT NULL DEFAULT '',
  tags                TEXT    NOT NULL DEFAULT '',
  quantity            INTEGER,
  price_per_unit      NUMERIC NOT NULL DEFAULT 0,
  discount_percentage NUMERIC NOT NULL DEFAULT 0,
  total_amount        NUMERIC NOT NULL DEFAULT 0,
  final_amount        NUMERIC NOT NULL DEFAULT 0,
  payment_method      TEXT    NOT NULL DEFAULT '',
  order_status        TEXT    NOT NULL DEFAULT '',
  delivery_type       TEXT    NOT NULL DEFAULT '',
  store_id            TEXT    NOT NULL DEFAULT '',
  store_location      TEXT    NOT NULL DEFAULT '',
  salesperson_id      TEXT    NOT NULL DEFAULT '',
  employee_name       TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_sales_region   ON sales(customer_region);
CREATE INDEX IF NOT EXISTS idx_sales_gender   ON sales(gender);
CREATE INDEX IF NOT EXISTS idx_sales_category ON sales(product_category);
CREATE INDEX IF NOT EXISTS idx_sales_payment  ON sales(payment_method);
CREATE INDEX IF NOT EXISTS idx_sales_date     ON sales(date_ms);
CREATE INDEX IF NOT EXISTS idx_sales_age      ON sales(age);

CREATE TABLE IF NOT EXISTS sale_tags (
  sale_id  BIGINT  NOT NULL REFERENCES sales(id) ON DELETE CASCADE,
  position INTEGER NOT NULL,
  tag      TEXT    NOT NULL,
  PRIMARY KEY (sale_id, position)
);
CREATE INDEX IF NOT EXISTS idx_sale_tags_tag ON sale_tags(tag, sale_id);
`
