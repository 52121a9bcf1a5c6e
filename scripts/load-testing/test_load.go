package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"
)

type LoadTestConfig struct {
	BaseURL             string
	ConcurrentShoppers  int
	TestDurationSeconds int
	RampUpSeconds       int
	ProductIDRange      int
}

type TestResult struct {
	TotalRequests       int64
	SuccessfulRequests  int64
	FailedRequests      int64
	CartUpdates         int64
	CheckoutAttempts    int64
	SuccessfulCheckouts int64
	ResponseTimes       []time.Duration
	Errors              map[string]int64
	mutex               sync.RWMutex
}

type PerformanceMetrics struct {
	StartTime           time.Time
	EndTime             time.Time
	TotalDuration       time.Duration
	ThroughputRPS       float64
	SuccessfulTPS       float64
	P50ResponseTime     time.Duration
	P95ResponseTime     time.Duration
	P99ResponseTime     time.Duration
	ErrorRate           float64
	CartUpdates         int64
	CheckoutSuccessRate float64
}

type LoadTester struct {
	config *LoadTestConfig
	result *TestResult
}

func NewLoadTester(config *LoadTestConfig) *LoadTester {
	return &LoadTester{
		config: config,
		result: &TestResult{
			ResponseTimes: make([]time.Duration, 0),
			Errors:        make(map[string]int64),
		},
	}
}

// newShopperClient gives each simulated shopper its own cookie jar so the
// cart_id cookie isolates carts the same way real browsers do.
func newShopperClient() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Timeout: 30 * time.Second,
		Jar:     jar,
		Transport: &http.Transport{
			MaxIdleConns:        1000,
			MaxIdleConnsPerHost: 100,
			MaxConnsPerHost:     200,
		},
	}
}

func (lt *LoadTester) recordResponse(duration time.Duration, success bool, operation string, err error) {
	lt.result.mutex.Lock()
	defer lt.result.mutex.Unlock()

	atomic.AddInt64(&lt.result.TotalRequests, 1)
	lt.result.ResponseTimes = append(lt.result.ResponseTimes, duration)

	if success {
		atomic.AddInt64(&lt.result.SuccessfulRequests, 1)
	} else {
		atomic.AddInt64(&lt.result.FailedRequests, 1)
		if err != nil {
			lt.result.Errors[fmt.Sprintf("%s: %s", operation, err.Error())]++
		}
	}
}

func (lt *LoadTester) simulateShopper(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	client := newShopperClient()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			numItems := rand.Intn(4) + 1
			for i := 0; i < numItems; i++ {
				lt.performAddItem(client)
			}

			lt.performGetCart(client)
			lt.performCheckout(client)

			time.Sleep(time.Duration(rand.Intn(1000)) * time.Millisecond)
		}
	}
}

func (lt *LoadTester) performAddItem(client *http.Client) {
	productID := rand.Intn(lt.config.ProductIDRange) + 1
	payload := map[string]interface{}{
		"product_id": productID,
		"name":       fmt.Sprintf("Product %d", productID),
		"price":      fmt.Sprintf("%d.99", rand.Intn(90)+9),
		"quantity":   rand.Intn(3) + 1,
	}
	body, _ := json.Marshal(payload)

	start := time.Now()
	resp, err := client.Post(lt.config.BaseURL+"/cart/items", "application/json", bytes.NewReader(body))
	duration := time.Since(start)

	success := false
	if err == nil && resp != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}

	if success {
		atomic.AddInt64(&lt.result.CartUpdates, 1)
	}

	lt.recordResponse(duration, success, "add_item", err)
}

func (lt *LoadTester) performGetCart(client *http.Client) {
	start := time.Now()
	resp, err := client.Get(lt.config.BaseURL + "/cart")
	duration := time.Since(start)

	success := false
	if err == nil && resp != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		success = resp.StatusCode == http.StatusOK
	}

	lt.recordResponse(duration, success, "get_cart", err)
}

func (lt *LoadTester) performCheckout(client *http.Client) {
	start := time.Now()
	resp, err := client.Post(lt.config.BaseURL+"/checkout", "application/json", nil)
	duration := time.Since(start)

	atomic.AddInt64(&lt.result.CheckoutAttempts, 1)

	success := false
	if err == nil && resp != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		// Anonymous shoppers are rejected with 401; that is the expected
		// outcome under load, not a transport failure.
		success = resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusUnauthorized
		if resp.StatusCode == http.StatusOK {
			atomic.AddInt64(&lt.result.SuccessfulCheckouts, 1)
		}
	}

	lt.recordResponse(duration, success, "checkout", err)
}

func (lt *LoadTester) Run() *PerformanceMetrics {
	fmt.Printf("Starting load test with %d concurrent shoppers for %d seconds\n",
		lt.config.ConcurrentShoppers, lt.config.TestDurationSeconds)

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(lt.config.TestDurationSeconds)*time.Second)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, stopping test...")
		cancel()
	}()

	startTime := time.Now()
	var wg sync.WaitGroup

	shopperInterval := time.Duration(lt.config.RampUpSeconds) * time.Second / time.Duration(lt.config.ConcurrentShoppers)

	for i := 0; i < lt.config.ConcurrentShoppers; i++ {
		wg.Add(1)
		go lt.simulateShopper(ctx, &wg)

		if i < lt.config.ConcurrentShoppers-1 {
			time.Sleep(shopperInterval)
		}
	}

	go lt.monitorProgress(ctx, startTime)

	wg.Wait()
	endTime := time.Now()

	return lt.calculateMetrics(startTime, endTime)
}

func (lt *LoadTester) monitorProgress(ctx context.Context, startTime time.Time) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			elapsed := time.Since(startTime)
			totalReqs := atomic.LoadInt64(&lt.result.TotalRequests)
			successReqs := atomic.LoadInt64(&lt.result.SuccessfulRequests)

			currentRPS := float64(totalReqs) / elapsed.Seconds()
			successRPS := float64(successReqs) / elapsed.Seconds()

			fmt.Printf("[%s] Total: %d, Success: %d, RPS: %.1f, Success RPS: %.1f\n",
				elapsed.Round(time.Second), totalReqs, successReqs, currentRPS, successRPS)
		}
	}
}

func (lt *LoadTester) calculateMetrics(startTime, endTime time.Time) *PerformanceMetrics {
	lt.result.mutex.RLock()
	defer lt.result.mutex.RUnlock()

	totalDuration := endTime.Sub(startTime)
	totalRequests := atomic.LoadInt64(&lt.result.TotalRequests)
	successfulRequests := atomic.LoadInt64(&lt.result.SuccessfulRequests)

	metrics := &PerformanceMetrics{
		StartTime:     startTime,
		EndTime:       endTime,
		TotalDuration: totalDuration,
		CartUpdates:   atomic.LoadInt64(&lt.result.CartUpdates),
	}

	if totalDuration.Seconds() > 0 {
		metrics.ThroughputRPS = float64(totalRequests) / totalDuration.Seconds()
		metrics.SuccessfulTPS = float64(successfulRequests) / totalDuration.Seconds()
	}

	if totalRequests > 0 {
		metrics.ErrorRate = float64(atomic.LoadInt64(&lt.result.FailedRequests)) / float64(totalRequests) * 100
	}

	if lt.result.CheckoutAttempts > 0 {
		metrics.CheckoutSuccessRate = float64(lt.result.SuccessfulCheckouts) / float64(lt.result.CheckoutAttempts) * 100
	}

	if len(lt.result.ResponseTimes) > 0 {
		metrics.P50ResponseTime = calculatePercentile(lt.result.ResponseTimes, 50)
		metrics.P95ResponseTime = calculatePercentile(lt.result.ResponseTimes, 95)
		metrics.P99ResponseTime = calculatePercentile(lt.result.ResponseTimes, 99)
	}

	return metrics
}

func calculatePercentile(durations []time.Duration, percentile int) time.Duration {
	if len(durations) == 0 {
		return 0
	}

	sorted := make([]time.Duration, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})

	index := int(float64(len(sorted)) * float64(percentile) / 100.0)
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	if index < 0 {
		index = 0
	}

	return sorted[index]
}

func (pm *PerformanceMetrics) PrintReport() {
	fmt.Printf("PERFORMANCE TEST RESULTS\n")
	fmt.Printf("Test Duration: %v\n", pm.TotalDuration.Round(time.Second))
	fmt.Printf("Start Time: %s\n", pm.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("End Time: %s\n", pm.EndTime.Format("2006-01-02 15:04:05"))
	fmt.Printf("\n")

	fmt.Printf("THROUGHPUT METRICS:\n")
	fmt.Printf("- Total RPS: %.2f requests/second\n", pm.ThroughputRPS)
	fmt.Printf("- Successful TPS: %.2f transactions/second\n", pm.SuccessfulTPS)
	fmt.Printf("- Error Rate: %.2f%%\n", pm.ErrorRate)
	fmt.Printf("\n")

	fmt.Printf("RESPONSE TIME METRICS:\n")
	fmt.Printf("- P50 Response Time: %v\n", pm.P50ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P95 Response Time: %v\n", pm.P95ResponseTime.Round(time.Millisecond))
	fmt.Printf("- P99 Response Time: %v\n", pm.P99ResponseTime.Round(time.Millisecond))
	fmt.Printf("\n")

	fmt.Printf("BUSINESS METRICS:\n")
	fmt.Printf("- Cart Updates: %d\n", pm.CartUpdates)
	fmt.Printf("- Checkout Success Rate: %.2f%%\n", pm.CheckoutSuccessRate)
	fmt.Printf("\n")
}

func (pm *PerformanceMetrics) SaveToFile(filename string) error {
	data, err := json.MarshalIndent(pm, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}

func main() {
	config := &LoadTestConfig{
		BaseURL:             "http://localhost:8080",
		ConcurrentShoppers:  100,
		TestDurationSeconds: 60,
		RampUpSeconds:       10,
		ProductIDRange:      500,
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "light":
			config.ConcurrentShoppers = 50
			config.TestDurationSeconds = 30
		case "heavy":
			config.ConcurrentShoppers = 500
			config.TestDurationSeconds = 300
		case "stress":
			config.ConcurrentShoppers = 1000
			config.TestDurationSeconds = 600
		}
	}

	loadTester := NewLoadTester(config)

	fmt.Printf("Configuration:\n")
	fmt.Printf("- Base URL: %s\n", config.BaseURL)
	fmt.Printf("- Concurrent Shoppers: %d\n", config.ConcurrentShoppers)
	fmt.Printf("- Test Duration: %d seconds\n", config.TestDurationSeconds)
	fmt.Printf("- Ramp Up: %d seconds\n", config.RampUpSeconds)
	fmt.Printf("\nStarting test...\n\n")

	metrics := loadTester.Run()

	metrics.PrintReport()

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("load_test_results_%s.json", timestamp)
	if err := metrics.SaveToFile(filename); err != nil {
		fmt.Printf("Failed to save results to file: %v\n", err)
	} else {
		fmt.Printf("Results saved to: %s\n", filename)
	}
}
