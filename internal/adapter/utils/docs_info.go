package utils

//run redis (optional, INDEX_BACKEND=redis)
//docker run -p 6379:6379 -d redis

//run ollama (optional, LLM_PROVIDER=ollama)
//docker run -p 11434:11434 -d ollama/ollama

//swagger init
//swag init -g cmd/api/main.go --parseDependency --parseInternal --dir ./ --output ./cmd/api/docs
