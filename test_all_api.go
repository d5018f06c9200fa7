package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	baseURL  = "http://localhost:8080"
	adminURL = "http://localhost:8081"
)

func main() {
	fmt.Println("==========================================")
	fmt.Println("    完整API测试")
	fmt.Println("==========================================")
	fmt.Println()

	// 1. 登录演示账号获取token
	fmt.Println("1. 登录演示账号...")
	loginResp, err := httpPost(baseURL+"/api/auth/login", map[string]string{
		"email":    "john.doe@example.com",
		"password": "Password123",
	})
	if err != nil {
		fmt.Printf("   登录失败: %v\n", err)
		return
	}
	tokenData, ok := loginResp["data"].(map[string]interface{})
	if !ok {
		fmt.Printf("   登录响应格式错误: %v\n", loginResp)
		return
	}
	token, _ := tokenData["token"].(string)
	fmt.Printf("   Token: %s\n", token)

	// 2. 商品列表（带筛选与排序）
	fmt.Println("\n2. 测试 /api/products?category=clothing&sort=price-asc...")
	productsResp, err := httpGet(baseURL+"/api/products?category=clothing&sort=price-asc", "")
	if err != nil {
		fmt.Printf("   失败: %v\n", err)
	} else {
		list, _ := productsResp["data"].([]interface{})
		fmt.Printf("   成功: %d 个商品\n", len(list))
	}

	// 3. 加入购物车并查看
	fmt.Println("\n3. 测试购物车...")
	if _, err := httpPost(baseURL+"/api/cart", map[string]interface{}{
		"product_id": 1,
		"quantity":   2,
	}, token); err != nil {
		fmt.Printf("   加购失败: %v\n", err)
	}
	cartResp, err := httpGet(baseURL+"/api/cart", token)
	if err != nil {
		fmt.Printf("   查询失败: %v\n", err)
	} else {
		fmt.Printf("   成功: %v\n", cartResp["data"])
	}

	// 4. 收藏
	fmt.Println("\n4. 测试 /api/wishlist...")
	if _, err := httpPost(baseURL+"/api/wishlist", map[string]interface{}{
		"product_id": 3,
	}, token); err != nil {
		fmt.Printf("   收藏失败: %v\n", err)
	}
	wishResp, err := httpGet(baseURL+"/api/wishlist", token)
	if err != nil {
		fmt.Printf("   查询失败: %v\n", err)
	} else {
		fmt.Printf("   成功: %v\n", wishResp["data"])
	}

	// 5. 下单
	fmt.Println("\n5. 测试 /api/orders/checkout...")
	checkoutResp, err := httpPost(baseURL+"/api/orders/checkout", map[string]interface{}{
		"shipping_address": map[string]string{
			"street":      "12 Residency Road",
			"city":        "Srinagar",
			"state":       "JK",
			"postal_code": "190001",
			"country":     "IN",
		},
	}, token)
	if err != nil {
		fmt.Printf("   失败: %v\n", err)
	} else {
		fmt.Printf("   成功: %v\n", checkoutResp["data"])
	}

	// 6. 管理端登录并查看统计
	fmt.Println("\n6. 测试管理端 /api/stats...")
	adminLogin, err := httpPost(adminURL+"/api/login", map[string]string{
		"email":    "admin@example.com",
		"password": "Password123",
	})
	if err != nil {
		fmt.Printf("   管理员登录失败: %v\n", err)
	} else {
		adminData, _ := adminLogin["data"].(map[string]interface{})
		adminToken, _ := adminData["token"].(string)
		statsResp, err := httpGet(adminURL+"/api/stats", adminToken)
		if err != nil {
			fmt.Printf("   失败: %v\n", err)
		} else {
			fmt.Printf("   成功: %v\n", statsResp["data"])
		}
	}

	// 7. 测试限流
	fmt.Println("\n7. 测试限流功能...")
	fmt.Println("   发送30个快速登录请求...")
	rateLimitCount := 0
	rejectedCount := 0
	for i := 0; i < 30; i++ {
		_, err := httpPost(baseURL+"/api/auth/login", map[string]string{
			"email":    "john.doe@example.com",
			"password": "wrong-password",
		})
		if err == nil {
			continue
		}
		if strings.Contains(err.Error(), "HTTP 429") {
			rateLimitCount++
		} else {
			rejectedCount++
		}
	}
	fmt.Printf("   拒绝: %d, 限流: %d\n", rejectedCount, rateLimitCount)

	fmt.Println("\n==========================================")
	fmt.Println("测试完成！")
	fmt.Println("==========================================")
}

func httpGet(url, token string) (map[string]interface{}, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("JSON解析失败: %v, 响应: %s", err, string(bodyBytes))
	}

	return result, nil
}

func httpPost(url string, body interface{}, token ...string) (map[string]interface{}, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest("POST", url, reqBody)
	if err != nil {
		return nil, err
	}
	if len(token) > 0 && token[0] != "" {
		req.Header.Set("Authorization", "Bearer "+token[0])
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result map[string]interface{}
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, fmt.Errorf("JSON解析失败: %v, 响应: %s", err, string(bodyBytes))
	}

	return result, nil
}
