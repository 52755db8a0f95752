// roomfit-server exposes the placement solver over HTTP.
//
// POST /solve takes a plan document and returns the result document plus a
// feasibility flag. Solves share no mutable state, so requests run
// concurrently without locking.

package main

import (
	"encoding/json"
	"flag"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/roomfit/internal/plan"
	"github.com/piwi3910/roomfit/internal/solver"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.Parse()

	r := gin.Default()
	r.POST("/solve", handleSolve)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	log.Printf("server running at %s", *addr)
	if err := r.Run(*addr); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func handleSolve(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	roomPlan, err := plan.Parse(body, "request")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := solver.New(roomPlan)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.Solve()
	doc, err := plan.MarshalResult(result)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feasible": result.Feasible(),
		"placed":   result.PlacedCount(),
		"items":    json.RawMessage(doc),
	})
}
