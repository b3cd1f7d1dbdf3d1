package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const docsPage = `<html>
  <head>
    <title>medialog API</title>
    <style>
      body { font-family: sans-serif; padding: 20px; }
      code { background: #f0f0f0; padding: 2px 4px; border-radius: 3px; }
      table { border-collapse: collapse; width: 100%; margin-top: 20px; }
      th, td { border: 1px solid #ccc; padding: 8px; text-align: left; }
    </style>
  </head>
  <body>
    <h1>medialog API</h1>
    <p>Admin endpoints require the <code>X-Admin-Token</code> header.</p>
    <table>
      <thead>
        <tr><th>Method</th><th>Path</th><th>Description</th><th>Body / Params</th></tr>
      </thead>
      <tbody>
        <tr><td>GET</td><td>/items</td><td>List items</td><td>Optional query: status, media_type</td></tr>
        <tr><td>GET</td><td>/items/:id</td><td>Fetch one item</td><td>Path id</td></tr>
        <tr><td>POST</td><td>/items</td><td>Create or upsert an item (admin)</td><td>{title, media_type, status, rating?, comment?, external_id?, updated_at?}</td></tr>
        <tr><td>PATCH</td><td>/items/:id?</td><td>Partially update an item (admin)</td><td>Any subset of {title, media_type, status, rating, comment}; null clears rating/comment; identify by path id or body external_id</td></tr>
        <tr><td>DELETE</td><td>/items/:id?</td><td>Delete an item (admin)</td><td>Path id or query external_id</td></tr>
        <tr><td>POST</td><td>/items/bangumi</td><td>Import from Bangumi</td><td>Header: Authorization: Bearer &lt;bangumi token&gt;; body as POST /items</td></tr>
        <tr><td>GET</td><td>/auth/verify</td><td>Check an admin token</td><td>Header: X-Admin-Token</td></tr>
      </tbody>
    </table>
  </body>
</html>`

// Docs serves the human-readable endpoint table.
func Docs(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(docsPage))
}
